package database

import (
	"context"
	"errors"
	"fmt"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"municipal-booking/config"
	"municipal-booking/model"
)

var ctx = context.TODO()

var ErrBookingNotFound = errors.New("booking not found")

// BookingRepository is the storage contract the booking service works
// against. FindByToken returns ErrBookingNotFound when no booking
// carries the token. Save inserts when the booking has no id yet and
// replaces otherwise, returning the stored booking.
type BookingRepository interface {
	FindByToken(token string) (*model.Booking, error)
	FindByMunicipality(municipality string) ([]model.Booking, error)
	FindAll() ([]model.Booking, error)
	Save(booking *model.Booking) (*model.Booking, error)
}

type MongoRepository struct {
	bookings *mongo.Collection
}

func NewMongoRepository(collectionName string) (*MongoRepository, error) {
	connString, err := config.GetSecret("MONGODB_CONNSTRING")
	if err != nil {
		log.Fatal("cannot find connection string for DB in the environment")
	}

	clientOptions := options.Client().ApplyURI(connString)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to the db: %v", err)
	}

	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("db is not available: %v", err)
	}

	return &MongoRepository{
		bookings: client.Database("municipal-booking").Collection(collectionName),
	}, nil
}

func (r *MongoRepository) FindByToken(token string) (*model.Booking, error) {
	var booking model.Booking
	err := r.bookings.FindOne(ctx, bson.D{primitive.E{Key: "token", Value: token}}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, ErrBookingNotFound
	} else if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading booking from database: %v", err)
	}

	return &booking, nil
}

func (r *MongoRepository) FindByMunicipality(municipality string) ([]model.Booking, error) {
	return r.find(bson.D{primitive.E{Key: "municipality", Value: municipality}})
}

func (r *MongoRepository) FindAll() ([]model.Booking, error) {
	return r.find(bson.D{})
}

func (r *MongoRepository) find(filter bson.D) ([]model.Booking, error) {
	bookings := []model.Booking{}

	cur, err := r.bookings.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("server side problem occured while reading bookings from database: %v", err)
	}

	for cur.Next(ctx) {
		var booking model.Booking
		if err := cur.Decode(&booking); err != nil {
			return nil, fmt.Errorf("server side problem occured while reading bookings from database: %v", err)
		}
		bookings = append(bookings, booking)
	}

	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("server side problem occured while reading bookings from database: %v", err)
	}

	cur.Close(ctx)

	return bookings, nil
}

func (r *MongoRepository) Save(booking *model.Booking) (*model.Booking, error) {
	if booking.Id.IsZero() {
		booking.Id = primitive.NewObjectID()
		if _, err := r.bookings.InsertOne(ctx, booking); err != nil {
			return nil, fmt.Errorf("db error while inserting booking: %v", err)
		}
		return booking, nil
	}

	opts := options.Replace().SetUpsert(true)
	filter := bson.D{primitive.E{Key: "_id", Value: booking.Id}}
	if _, err := r.bookings.ReplaceOne(ctx, filter, booking, opts); err != nil {
		return nil, fmt.Errorf("db error while updating booking: %v", err)
	}

	return booking, nil
}
