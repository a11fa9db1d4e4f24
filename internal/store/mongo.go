package store

import (
	"context"
	"errors"
	"fmt"

	"employee-records/internal/models"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// employeeIDRegex matches assigned identifiers: E followed by exactly
// three decimal digits. Legacy records outside this pattern never feed
// the allocator.
const employeeIDRegex = `^E\d{3}$`

// documentValidationFailure is the MongoDB server error code raised when
// a write violates the collection validator.
const documentValidationFailure = 121

// MongoStore persists employee records in a single MongoDB collection.
type MongoStore struct {
	col *mongo.Collection
}

func NewMongoStore(db *mongo.Database, collection string) *MongoStore {
	return &MongoStore{col: db.Collection(collection)}
}

// EnsureIndexes creates the unique index on employee_id. This index is
// the sole backstop against concurrent creates racing on the same
// identifier, so failure here is for the caller to treat as fatal.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "employee_id", Value: 1}},
		Options: options.Index().SetName("uniq_employee_id").SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create employee_id index: %w", err)
	}
	return nil
}

// EnsureSchema applies the JSON schema validator to the collection:
// create-with-validator first, collMod if the collection already exists.
// Errors are returned for the caller to log; the service keeps running
// without storage-level schema enforcement.
func (s *MongoStore) EnsureSchema(ctx context.Context) error {
	validator := bson.M{"$jsonSchema": employeeSchema()}
	db := s.col.Database()

	err := db.CreateCollection(ctx, s.col.Name(),
		options.CreateCollection().SetValidator(validator))
	if err == nil {
		log.Info().Str("collection", s.col.Name()).Msg("created collection with JSON schema validator")
		return nil
	}

	res := db.RunCommand(ctx, bson.D{
		{Key: "collMod", Value: s.col.Name()},
		{Key: "validator", Value: validator},
	})
	if res.Err() != nil {
		return fmt.Errorf("apply schema validator: %w", res.Err())
	}
	log.Info().Str("collection", s.col.Name()).Msg("applied JSON schema validator to existing collection")
	return nil
}

func employeeSchema() bson.M {
	return bson.M{
		"bsonType": "object",
		"required": bson.A{"employee_id", "name", "department", "salary", "joining_date", "skills"},
		"properties": bson.M{
			"employee_id":  bson.M{"bsonType": "string"},
			"name":         bson.M{"bsonType": "string"},
			"department":   bson.M{"bsonType": "string"},
			"salary":       bson.M{"bsonType": bson.A{"double", "int", "long"}},
			"joining_date": bson.M{"bsonType": "date"},
			"skills": bson.M{
				"bsonType": "array",
				"items":    bson.M{"bsonType": "string"},
			},
		},
	}
}

func (s *MongoStore) InsertOne(ctx context.Context, emp *models.Employee) error {
	res, err := s.col.InsertOne(ctx, emp)
	if err != nil {
		return mapWriteError(err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		emp.ID = oid
	}
	return nil
}

func (s *MongoStore) InsertMany(ctx context.Context, emps []*models.Employee) error {
	if len(emps) == 0 {
		return nil
	}
	docs := make([]interface{}, len(emps))
	for i, emp := range emps {
		docs[i] = emp
	}
	res, err := s.col.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if res != nil {
		for i, id := range res.InsertedIDs {
			if oid, ok := id.(primitive.ObjectID); ok && i < len(emps) {
				emps[i].ID = oid
			}
		}
	}
	if err != nil {
		return mapWriteError(err)
	}
	return nil
}

func (s *MongoStore) FindByEmployeeID(ctx context.Context, employeeID string) (*models.Employee, error) {
	var emp models.Employee
	err := s.col.FindOne(ctx, bson.M{"employee_id": employeeID}).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find employee %s: %w", employeeID, err)
	}
	return &emp, nil
}

func (s *MongoStore) FindByEmployeeIDs(ctx context.Context, employeeIDs []string) ([]*models.Employee, error) {
	cursor, err := s.col.Find(ctx, bson.M{"employee_id": bson.M{"$in": employeeIDs}})
	if err != nil {
		return nil, fmt.Errorf("find employees: %w", err)
	}
	return decodeAll(ctx, cursor)
}

func (s *MongoStore) FindHighestEmployeeID(ctx context.Context) (*models.Employee, error) {
	var emp models.Employee
	err := s.col.FindOne(ctx,
		bson.M{"employee_id": bson.M{"$regex": employeeIDRegex}},
		options.FindOne().SetSort(bson.D{{Key: "employee_id", Value: -1}}),
	).Decode(&emp)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrEmployeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find highest employee_id: %w", err)
	}
	return &emp, nil
}

func (s *MongoStore) List(ctx context.Context, q ListQuery) ([]*models.Employee, error) {
	filter := bson.M{}
	if q.Department != "" {
		filter["department"] = q.Department
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "joining_date", Value: -1}}).
		SetSkip(q.Skip).
		SetLimit(q.Limit)
	cursor, err := s.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	return decodeAll(ctx, cursor)
}

func (s *MongoStore) FindBySkill(ctx context.Context, skill string) ([]*models.Employee, error) {
	cursor, err := s.col.Find(ctx, bson.M{"skills": bson.M{"$in": bson.A{skill}}})
	if err != nil {
		return nil, fmt.Errorf("search by skill: %w", err)
	}
	return decodeAll(ctx, cursor)
}

func (s *MongoStore) UpdateByEmployeeID(ctx context.Context, employeeID string, fields map[string]any) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"employee_id": employeeID},
		bson.M{"$set": fields},
	)
	if err != nil {
		return mapWriteError(err)
	}
	if res.MatchedCount == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *MongoStore) DeleteByEmployeeID(ctx context.Context, employeeID string) error {
	res, err := s.col.DeleteOne(ctx, bson.M{"employee_id": employeeID})
	if err != nil {
		return fmt.Errorf("delete employee %s: %w", employeeID, err)
	}
	if res.DeletedCount == 0 {
		return ErrEmployeeNotFound
	}
	return nil
}

func (s *MongoStore) AverageSalaryByDepartment(ctx context.Context) ([]models.DepartmentSalary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$department"},
			{Key: "avg_salary", Value: bson.D{{Key: "$avg", Value: "$salary"}}},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "department", Value: "$_id"},
			{Key: "avg_salary", Value: bson.D{{Key: "$round", Value: bson.A{"$avg_salary", 2}}}},
			{Key: "_id", Value: 0},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "department", Value: 1}}}},
	}
	cursor, err := s.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("aggregate avg salary: %w", err)
	}
	defer cursor.Close(ctx)

	out := []models.DepartmentSalary{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode avg salary: %w", err)
	}
	return out, nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.col.Database().Client().Ping(ctx, readpref.Primary())
}

func decodeAll(ctx context.Context, cursor *mongo.Cursor) ([]*models.Employee, error) {
	defer cursor.Close(ctx)
	emps := []*models.Employee{}
	if err := cursor.All(ctx, &emps); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}
	return emps, nil
}

// mapWriteError translates MongoDB write failures into the store's error
// kinds: duplicate key on employee_id and validator rejections surface as
// distinct errors, everything else propagates as-is.
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateEmployeeID, err.Error())
	}
	if hasWriteErrorCode(err, documentValidationFailure) {
		return fmt.Errorf("%w: %s", ErrSchemaViolation, err.Error())
	}
	return err
}

func hasWriteErrorCode(err error, code int) bool {
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == code {
				return true
			}
		}
	}
	var bwe mongo.BulkWriteException
	if errors.As(err, &bwe) {
		for _, e := range bwe.WriteErrors {
			if e.Code == code {
				return true
			}
		}
	}
	return false
}
