package database

import (
	"context"
	"os"
	"time"
)

// TestMongoURI points tests at a local Mongo instance; override with
// MONGO_TEST_URI when the test database runs elsewhere.
func TestMongoURI() string {
	if uri := os.Getenv("MONGO_TEST_URI"); uri != "" {
		return uri
	}
	return "mongodb://127.0.0.1:27017"
}

// StorageConnect establishes a connection to the test Mongo instance. It
// returns a connected Store or an error if the instance is unreachable, in
// which case tests should skip rather than fail.
func StorageConnect(ctx context.Context) (*Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	s, err := Connect(ctx, TestMongoURI(), "baeci_store_test")
	if err != nil {
		return nil, err
	}
	return s, nil
}

// RestoreDB drops every collection to reset database state.
// WARNING: use only in tests to avoid data loss.
func RestoreDB(s *Store) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, name := range []string{collSettings, collPosts, collProducts, collLinks} {
		if err := s.collection(name).Drop(ctx); err != nil {
			return err
		}
	}
	return nil
}
