package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"shiftsync/roster"
)

// MongoStore backs the schedule and shift stores with MongoDB collections.
// UpdateOne's reply carries matched/modified counts natively, which is the
// exact contract ApplyAttendance reports.
type MongoStore struct {
	client    *mongo.Client
	schedules *mongo.Collection
	masters   *mongo.Collection
}

type scheduleDoc struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	UserID         string        `bson:"userId"`
	WorkDate       time.Time     `bson:"workDate"`
	ShiftCode      string        `bson:"shiftCode"`
	ActualIn       *string       `bson:"actualIn,omitempty"`
	ActualOut      *string       `bson:"actualOut,omitempty"`
	AttendanceFlag *string       `bson:"attendanceFlag,omitempty"`
	AttendanceNote *string       `bson:"attendanceNote,omitempty"`
	Deleted        bool          `bson:"deleted,omitempty"`
}

func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	db := client.Database(database)
	store := &MongoStore{
		client:    client,
		schedules: db.Collection("schedules"),
		masters:   db.Collection("masters"),
	}

	if err := store.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}

	return store, nil
}

func (m *MongoStore) ensureIndexes(ctx context.Context) error {
	if _, err := m.schedules.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "workDate", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("create schedule indexes: %w", err)
	}

	if _, err := m.masters.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "category", Value: 1}, {Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}); err != nil {
		return fmt.Errorf("create master indexes: %w", err)
	}

	return nil
}

func (m *MongoStore) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *MongoStore) InsertSchedules(ctx context.Context, schedules []roster.Schedule) (int, error) {
	if len(schedules) == 0 {
		return 0, nil
	}

	docs := make([]any, 0, len(schedules))
	for _, schedule := range schedules {
		docs = append(docs, scheduleDoc{
			UserID:         schedule.UserID,
			WorkDate:       schedule.WorkDate,
			ShiftCode:      schedule.ShiftCode,
			ActualIn:       optional(schedule.Attendance.ActualIn),
			ActualOut:      optional(schedule.Attendance.ActualOut),
			AttendanceFlag: optional(schedule.Attendance.Flag),
			AttendanceNote: optional(schedule.Attendance.Note),
			Deleted:        schedule.Deleted,
		})
	}

	res, err := m.schedules.InsertMany(ctx, docs)
	if err != nil {
		return 0, fmt.Errorf("insert schedules: %w", err)
	}
	return len(res.InsertedIDs), nil
}

func (m *MongoStore) FindByUserAndDay(ctx context.Context, userID string, from, to time.Time) ([]roster.Schedule, error) {
	filter := bson.M{
		"userId":   userID,
		"workDate": bson.M{"$gte": from, "$lte": to},
		"deleted":  bson.M{"$ne": true},
	}
	return m.findSchedules(ctx, filter)
}

func (m *MongoStore) ListSchedules(ctx context.Context) ([]roster.Schedule, error) {
	return m.findSchedules(ctx, bson.M{"deleted": bson.M{"$ne": true}})
}

func (m *MongoStore) findSchedules(ctx context.Context, filter bson.M) ([]roster.Schedule, error) {
	cursor, err := m.schedules.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find schedules: %w", err)
	}

	var docs []scheduleDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}

	schedules := make([]roster.Schedule, 0, len(docs))
	for _, doc := range docs {
		schedules = append(schedules, roster.Schedule{
			ID:        doc.ID.Hex(),
			UserID:    doc.UserID,
			WorkDate:  doc.WorkDate,
			ShiftCode: doc.ShiftCode,
			Attendance: roster.Attendance{
				ActualIn:  deref(doc.ActualIn),
				ActualOut: deref(doc.ActualOut),
				Flag:      deref(doc.AttendanceFlag),
				Note:      deref(doc.AttendanceNote),
			},
			Deleted: doc.Deleted,
		})
	}

	return schedules, nil
}

func (m *MongoStore) ApplyAttendance(ctx context.Context, update roster.AttendanceUpdate) (UpdateResult, error) {
	id, err := bson.ObjectIDFromHex(update.ScheduleID)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("invalid schedule id %q: %w", update.ScheduleID, err)
	}

	res, err := m.schedules.UpdateOne(ctx,
		bson.M{"_id": id, "deleted": bson.M{"$ne": true}},
		bson.M{"$set": bson.M{
			"actualIn":       bsonNullable(update.ActualIn),
			"actualOut":      bsonNullable(update.ActualOut),
			"attendanceFlag": bsonNullable(update.Flag),
			"attendanceNote": bsonNullable(update.Note),
		}},
	)
	if err != nil {
		return UpdateResult{}, fmt.Errorf("update schedule %s: %w", update.ScheduleID, err)
	}

	return UpdateResult{Matched: res.MatchedCount, Modified: res.ModifiedCount}, nil
}

func (m *MongoStore) InsertShifts(ctx context.Context, shifts []roster.ShiftWindow) (int, error) {
	inserted := 0
	for _, shift := range shifts {
		code := strings.ToUpper(strings.TrimSpace(shift.Code))
		res, err := m.masters.UpdateOne(ctx,
			bson.M{"category": ShiftCategory, "code": code},
			bson.M{"$set": bson.M{
				"category": ShiftCategory,
				"code":     code,
				"timeFrom": bsonNullable(shift.TimeFrom),
				"timeTo":   bsonNullable(shift.TimeTo),
			}},
			options.UpdateOne().SetUpsert(true),
		)
		if err != nil {
			return inserted, fmt.Errorf("upsert shift %s: %w", shift.Code, err)
		}
		inserted += int(res.UpsertedCount)
	}
	return inserted, nil
}

func (m *MongoStore) WindowsByCodes(ctx context.Context, codes []string) (map[string]roster.ShiftWindow, error) {
	windows := make(map[string]roster.ShiftWindow, len(codes))
	if len(codes) == 0 {
		return windows, nil
	}

	upper := make([]string, 0, len(codes))
	for _, code := range codes {
		upper = append(upper, strings.ToUpper(strings.TrimSpace(code)))
	}

	cursor, err := m.masters.Find(ctx, bson.M{"category": ShiftCategory, "code": bson.M{"$in": upper}})
	if err != nil {
		return nil, fmt.Errorf("find shift windows: %w", err)
	}

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode shift windows: %w", err)
	}

	for _, doc := range docs {
		code := stringField(doc, "code", "Code")
		if code == "" {
			continue
		}
		windows[strings.ToUpper(code)] = roster.ShiftWindow{
			Code: code,
			// Older master documents carry Pascal-cased keys; check both.
			TimeFrom: stringField(doc, "timeFrom", "TimeFrom"),
			TimeTo:   stringField(doc, "timeTo", "TimeTo"),
		}
	}

	return windows, nil
}

func stringField(doc bson.M, keys ...string) string {
	for _, key := range keys {
		if value, ok := doc[key].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

// bsonNullable maps empty strings to explicit nulls so cleared fields read
// back as absent rather than "".
func bsonNullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func optional(value string) *string {
	if value == "" {
		return nil
	}
	return &value
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
