package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"checkout-backend/internal/domains/order/model"
)

// =====================================================
// MONGO ORDER REPOSITORY
// =====================================================

type mongoOrderRepository struct {
	collection *mongo.Collection
}

// NewMongoOrderRepository creates the document-store backed repository
func NewMongoOrderRepository(collection *mongo.Collection) OrderRepository {
	return &mongoOrderRepository{collection: collection}
}

// FindByGatewayOrderID looks up at most one record by the gateway order id
func (r *mongoOrderRepository) FindByGatewayOrderID(
	ctx context.Context,
	gatewayOrderID string,
) (*model.OrderRecord, error) {
	var rec model.OrderRecord

	err := r.collection.FindOne(ctx, bson.M{"gateway_order_id": gatewayOrderID}).Decode(&rec)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up order %s: %w", gatewayOrderID, err)
	}

	return &rec, nil
}

// Create inserts a new record with a generated document id
func (r *mongoOrderRepository) Create(ctx context.Context, rec *model.OrderRecord) error {
	if rec.LocalID == "" {
		rec.LocalID = primitive.NewObjectID().Hex()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	rec.UpdatedAt = time.Now().UTC()

	if _, err := r.collection.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("failed to create order record: %w", err)
	}
	return nil
}

// Update replaces the existing document. The document id never changes,
// so a full replace keeps the lookup invariant intact.
func (r *mongoOrderRepository) Update(ctx context.Context, rec *model.OrderRecord) error {
	rec.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": rec.LocalID}, rec)
	if err != nil {
		return fmt.Errorf("failed to update order record: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("order record %s not found for update", rec.LocalID)
	}
	return nil
}
