package testhelpers

import (
	"context"
	"testing"

	"github.com/road2tec/girha-setu-sub000/backend/shared/go-utils"
	"github.com/sirupsen/logrus"
)

const (
	TestJWTSecret           = "test-jwt-secret"
	TestStripeWebhookSecret = "whsec_test_secret"
)

// TestHelper bundles an in-memory store, its repositories and the secrets
// tests need to mint tokens and sign webhooks.
type TestHelper struct {
	T                   *testing.T
	Ctx                 context.Context
	JWTSecret           []byte
	StripeWebhookSecret string

	Store *MemStore
	Repositories
}

func NewTestHelper(t *testing.T) *TestHelper {
	t.Helper()
	utils.Logger.SetLevel(logrus.WarnLevel)
	store := NewMemStore()
	return &TestHelper{
		T:                   t,
		Ctx:                 context.Background(),
		JWTSecret:           []byte(TestJWTSecret),
		StripeWebhookSecret: TestStripeWebhookSecret,
		Store:               store,
		Repositories:        store.Repositories(),
	}
}
