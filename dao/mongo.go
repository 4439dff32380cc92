package dao

import (
	"context"
	"errors"
	"os"
	"sync"
	"time"

	"github.com/companieshouse/chs.go/log"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/config"
	"github.com/companieshouse/paypal-tokenization.api.ch.gov.uk/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var client *mongo.Client

// MongoDatabaseInterface is an interface that describes the mongodb driver
type MongoDatabaseInterface interface {
	Collection(name string, opts ...*options.CollectionOptions) *mongo.Collection
}

func getMongoClient(mongoDBURL string) *mongo.Client {
	if client != nil {
		return client
	}

	ctx := context.Background()

	clientOptions := options.Client().ApplyURI(mongoDBURL)

	var err error
	client, err = mongo.Connect(ctx, clientOptions)

	// Assume the caller of this func cannot handle the case where there is no database connection
	// so the service must crash here as it cannot continue.
	if err != nil {
		log.Error(err)
		os.Exit(1)
	}

	// Check we can connect to the mongodb instance. Failure here should result in a crash.
	pingContext, cancel := context.WithDeadline(ctx, time.Now().Add(5*time.Second))
	defer cancel()
	err = client.Ping(pingContext, nil)
	if err != nil {
		log.Error(errors.New("ping to mongodb timed out. please check the connection to mongodb and that it is running"))
		os.Exit(1)
	}

	log.Info("connected to mongodb successfully")

	return client
}

// getMongoDatabase returns a handle to the configured database
func getMongoDatabase(mongoDBURL, databaseName string) MongoDatabaseInterface {
	return getMongoClient(mongoDBURL).Database(databaseName)
}

// MongoService is an implementation of the DAO interface using MongoDB as the backend driver.
type MongoService struct {
	db             MongoDatabaseInterface
	CollectionName string
}

var mongoService *MongoService
var mongoServiceOnce sync.Once

// NewMongoService returns a MongoService for the configured database and collection
func NewMongoService(cfg config.Config) *MongoService {
	mongoServiceOnce.Do(func() {
		mongoService = &MongoService{
			db:             getMongoDatabase(cfg.MongoDBURL, cfg.Database),
			CollectionName: cfg.Collection,
		}
	})
	return mongoService
}

// CreateTokenizationResource writes a new tokenization session resource to the DB
func (m *MongoService) CreateTokenizationResource(tokenizationResource *models.TokenizationResourceDB) error {
	collection := m.db.Collection(m.CollectionName)
	_, err := collection.InsertOne(context.Background(), tokenizationResource)

	return err
}

// GetTokenizationResource gets a tokenization session resource from the DB
// If the resource is not found in the DB, return nil with no error
func (m *MongoService) GetTokenizationResource(id string) (*models.TokenizationResourceDB, error) {
	var resource models.TokenizationResourceDB

	collection := m.db.Collection(m.CollectionName)
	dbResource := collection.FindOne(context.Background(), bson.M{"_id": id})

	err := dbResource.Err()
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}

	err = dbResource.Decode(&resource)
	if err != nil {
		return nil, err
	}

	return &resource, nil
}

// PatchTokenizationResource patches a tokenization session resource in the DB
func (m *MongoService) PatchTokenizationResource(id string, patch *models.TokenizationResourceDB) error {
	collection := m.db.Collection(m.CollectionName)

	update := bson.M{
		"$set": bson.M{
			"external_approval_url":   patch.ExternalApprovalURI,
			"external_order_id":       patch.ExternalOrderID,
			"billing_agreement_token": patch.BillingAgreementToken,
			"browser_switch_handle":   patch.BrowserSwitchHandle,
			"data.status":             patch.Data.Status,
			"data.completed_at":       patch.Data.CompletedAt,
			"data.account_nonce":      patch.Data.AccountNonce,
		},
	}

	_, err := collection.UpdateOne(context.Background(), bson.M{"_id": id}, update)

	return err
}
