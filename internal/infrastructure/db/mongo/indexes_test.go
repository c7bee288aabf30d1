package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func findIndex(t *testing.T, models []mongo.IndexModel, field string) mongo.IndexModel {
	t.Helper()
	for _, m := range models {
		keys, ok := m.Keys.(bson.D)
		if !ok {
			t.Fatalf("unexpected keys type %T", m.Keys)
		}
		if len(keys) > 0 && keys[0].Key == field {
			return m
		}
	}
	t.Fatalf("no index starting on %q", field)
	return mongo.IndexModel{}
}

func isUnique(m mongo.IndexModel) bool {
	return m.Options != nil && m.Options.Unique != nil && *m.Options.Unique
}

// Registration maps duplicate-key errors to ErrUserExists/ErrAdminExists.
// Those branches can only fire when the backing indexes are unique, so the
// definitions are part of the registration contract.
func TestIndexModels_UniquenessBacksDuplicateChecks(t *testing.T) {
	if !isUnique(findIndex(t, userIndexModels(), "email")) {
		t.Fatalf("users.email index must be unique")
	}
	if !isUnique(findIndex(t, adminIndexModels(), "username")) {
		t.Fatalf("admins.username index must be unique")
	}
	if !isUnique(findIndex(t, paymentIndexModels(), "transaction_ref")) {
		t.Fatalf("payments.transaction_ref index must be unique")
	}
}

func TestIndexModels_CoverListingQueries(t *testing.T) {
	compound := findIndex(t, violationIndexModels(), "vehicle_number")
	keys := compound.Keys.(bson.D)
	if len(keys) != 2 || keys[1].Key != "status" {
		t.Fatalf("expected compound vehicle_number+status index, got %v", keys)
	}
	findIndex(t, violationIndexModels(), "timestamp")

	history := findIndex(t, paymentIndexModels(), "user_id")
	keys = history.Keys.(bson.D)
	if len(keys) != 2 || keys[1].Key != "payment_date" {
		t.Fatalf("expected compound user_id+payment_date index, got %v", keys)
	}
}
