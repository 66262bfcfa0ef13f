package countries

import (
	"appointment-service/internal/app/contracts"
	"appointment-service/internal/app/models"
	"appointment-service/internal/pkg/constvars"
	"appointment-service/internal/pkg/exceptions"
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CountryBookingMongoRepository struct {
	Collection  *mongo.Collection
	countryCode string
}

// NewCountryBookingMongoRepository opens the store of one country. Each country
// lives in its own database.
func NewCountryBookingMongoRepository(db *mongo.Client, dbName, countryCode string) contracts.CountryBookingRepository {
	return &CountryBookingMongoRepository{
		Collection:  db.Database(dbName).Collection(constvars.MongoCollectionCountryAppointments),
		countryCode: strings.ToUpper(countryCode),
	}
}

func (r *CountryBookingMongoRepository) EnsureIndexes(ctx context.Context, unique bool) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "scheduleId", Value: 1}},
			Options: options.Index().SetName(constvars.MongoIndexCountryScheduleID),
		},
	}
	if unique {
		indexes = []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "scheduleId", Value: 1}},
				Options: options.Index().SetName(constvars.MongoIndexCountryScheduleIDUnique).SetUnique(true),
			},
			{
				Keys:    bson.D{{Key: "externalId", Value: 1}},
				Options: options.Index().SetName(constvars.MongoIndexCountryExternalIDUnique).SetUnique(true),
			},
		}
	}

	_, err := r.Collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, r.Collection.Database().Name()+"."+r.Collection.Name())
	}
	return nil
}

func (r *CountryBookingMongoRepository) Create(ctx context.Context, booking *models.CountryBooking) error {
	_, err := r.Collection.InsertOne(ctx, booking)
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		if strings.Contains(err.Error(), constvars.MongoIndexCountryExternalIDUnique) {
			return exceptions.ErrBookingAlreadyExists(ErrExternalIDTaken, booking.ExternalID, r.countryCode)
		}
		return exceptions.ErrScheduleAlreadyBooked(ErrScheduleTaken, booking.ScheduleID, r.countryCode)
	}
	return exceptions.ErrMongoDBInsertDocument(err)
}

func (r *CountryBookingMongoRepository) IsScheduleFree(ctx context.Context, scheduleID int64) (bool, error) {
	count, err := r.Collection.CountDocuments(ctx, bson.M{"scheduleId": scheduleID}, options.Count().SetLimit(1))
	if err != nil {
		return false, exceptions.ErrMongoDBFindDocument(err)
	}
	return count == 0, nil
}

func (r *CountryBookingMongoRepository) FindByExternalID(ctx context.Context, externalID string) (*models.CountryBooking, error) {
	var booking models.CountryBooking
	err := r.Collection.FindOne(ctx, bson.M{"externalId": externalID}).Decode(&booking)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &booking, nil
}
