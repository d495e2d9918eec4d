package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"shopfront/internal/models"
)

// ErrNotFound se devuelve cuando el producto no existe o está borrado.
var ErrNotFound = errors.New("product not found")

const countersCollection = "counters"

// ProductRepository implementa el servicio de catálogo sobre MongoDB.
type ProductRepository struct {
	collection *mongo.Collection
	counters   *mongo.Collection
}

func NewProductRepository(db *mongo.Database) *ProductRepository {
	return &ProductRepository{
		collection: db.Collection("products"),
		counters:   db.Collection(countersCollection),
	}
}

// Snapshot devuelve el catálogo completo de productos no borrados, en
// orden estable de creación ascendente. El filtrado por texto y
// categoría se hace en memoria sobre esta foto.
func (r *ProductRepository) Snapshot(ctx context.Context) ([]models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	filter := bson.M{"is_deleted": false}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	products := make([]models.Product, 0)
	if err = cursor.All(ctx, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// FindByID obtiene un producto por ID
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	var product models.Product
	filter := bson.M{
		"_id":        id,
		"is_deleted": false,
	}

	err := r.collection.FindOne(ctx, filter).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Create persiste un producto nuevo, asignándole el siguiente ID de la
// secuencia del catálogo.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	product.ID = id
	product.CreatedAt = now
	product.UpdatedAt = now
	product.IsDeleted = false

	_, err = r.collection.InsertOne(ctx, product)
	return err
}

// Update actualiza parcialmente un producto
func (r *ProductRepository) Update(ctx context.Context, id int64, update models.ProductUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	set := updateDocument(update)
	set["updated_at"] = time.Now()

	filter := bson.M{
		"_id":        id,
		"is_deleted": false,
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDelete marca un producto como eliminado
func (r *ProductRepository) SoftDelete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{
		"_id":        id,
		"is_deleted": false,
	}
	update := bson.M{
		"$set": bson.M{
			"is_deleted": true,
			"updated_at": time.Now(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// nextID incrementa atómicamente la secuencia de IDs de productos.
func (r *ProductRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": "products"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, err
	}
	return counter.Seq, nil
}

// updateDocument traduce los campos presentes del update a un $set.
func updateDocument(update models.ProductUpdate) bson.M {
	set := bson.M{}
	if update.Name != nil {
		set["name"] = *update.Name
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Category != nil {
		set["category"] = *update.Category
	}
	if update.PriceCents != nil {
		set["price_cents"] = *update.PriceCents
	}
	if update.Currency != nil {
		set["currency"] = *update.Currency
	}
	if update.Stock != nil {
		set["stock"] = *update.Stock
	}
	if update.ImageRef != nil {
		set["image_ref"] = *update.ImageRef
	}
	if update.IsActive != nil {
		set["is_active"] = *update.IsActive
	}
	return set
}
