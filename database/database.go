package database

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/xwby268/BIO-LINK-2/models"
)

var (
	ErrConnectDB       = fmt.Errorf("unable to establish DB connection")
	ErrDBNotResponding = fmt.Errorf("DB not responding")

	ErrContentRequired = fmt.Errorf("post content is required")
	ErrPostNotFound    = fmt.Errorf("post not found")
)

const (
	collSettings = "settings"
	collPosts    = "posts"
	collProducts = "products"
	collLinks    = "links"
)

// Store owns the single MongoDB connection for the process. It is created
// once by the composition root, handed to every handler, and safe for
// concurrent use.
type Store struct {
	client *mongo.Client
	dbName string
}

// Connect establishes the connection and verifies it with a ping. Callers
// treat a failure here as fatal: the service does not start degraded.
func Connect(ctx context.Context, uri, dbName string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectDB, err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDBNotResponding, err)
	}

	return &Store{client: client, dbName: dbName}, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) collection(name string) *mongo.Collection {
	return s.client.Database(s.dbName).Collection(name)
}

// Settings returns the general settings singleton, or nil if no admin has
// written it yet.
func (s *Store) Settings(ctx context.Context) (models.Document, error) {
	var doc models.Document
	err := s.collection(collSettings).FindOne(ctx, bson.M{"type": "general"}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// UpdateSettings upserts the singleton, shallow-merging patch into the stored
// document. The discriminator field always stays "general" regardless of what
// the patch carries.
func (s *Store) UpdateSettings(ctx context.Context, patch models.Document) error {
	set := patch.Clone()
	set["type"] = "general"

	_, err := s.collection(collSettings).UpdateOne(ctx,
		bson.M{"type": "general"},
		bson.M{"$set": set},
		options.Update().SetUpsert(true),
	)
	return err
}

// ListPosts returns all posts, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := s.collection(collPosts).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	if err := cur.All(ctx, &posts); err != nil {
		return nil, err
	}

	for i := range posts {
		normalizePost(&posts[i])
	}
	return posts, nil
}

// CreatePost validates and inserts a new post. Date, likes and comments are
// always server-assigned; the stored document, including its id, is returned.
func (s *Store) CreatePost(ctx context.Context, post models.Post) (models.Post, error) {
	if post.Content == "" {
		return models.Post{}, ErrContentRequired
	}

	post.ID = primitive.NewObjectID()
	post.Date = time.Now()
	post.Likes = []string{}
	post.Comments = []models.Comment{}

	if _, err := s.collection(collPosts).InsertOne(ctx, post); err != nil {
		return models.Post{}, err
	}
	return post, nil
}

// ToggleLike flips userID's membership in the post's like set and returns the
// resulting set. The read and the write are two separate operations, so
// concurrent toggles on the same post can lose updates; the feed tolerates
// that.
func (s *Store) ToggleLike(ctx context.Context, id primitive.ObjectID, userID string) ([]string, error) {
	var post models.Post
	err := s.collection(collPosts).FindOne(ctx, bson.M{"_id": id}).Decode(&post)
	if err == mongo.ErrNoDocuments {
		return nil, ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}

	likes := post.Likes
	if likes == nil {
		likes = []string{}
	}

	found := false
	for i, u := range likes {
		if u == userID {
			likes = append(likes[:i], likes[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		likes = append(likes, userID)
	}

	_, err = s.collection(collPosts).UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"likes": likes}})
	if err != nil {
		return nil, err
	}
	return likes, nil
}

// AddComment builds a comment with a fresh time-derived id and appends it to
// the post. The append is lenient: a well-formed id that matches no post is
// a no-op and the constructed comment is still returned, matching what
// existing clients expect.
func (s *Store) AddComment(ctx context.Context, id primitive.ObjectID, text, user string) (models.Comment, error) {
	comment := models.Comment{
		ID:   primitive.NewObjectID().Hex(),
		Text: text,
		User: user,
		Date: time.Now(),
	}

	_, err := s.collection(collPosts).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$push": bson.M{"comments": comment}},
	)
	if err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

// DeletePost removes a post. Deleting an id that no longer exists succeeds.
func (s *Store) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteByID(ctx, collPosts, id)
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Document, error) {
	return s.listDocuments(ctx, collProducts)
}

func (s *Store) AddProduct(ctx context.Context, product models.Document) error {
	return s.insertDocument(ctx, collProducts, product)
}

func (s *Store) DeleteProduct(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteByID(ctx, collProducts, id)
}

func (s *Store) ListLinks(ctx context.Context) ([]models.Document, error) {
	return s.listDocuments(ctx, collLinks)
}

func (s *Store) AddLink(ctx context.Context, link models.Document) error {
	return s.insertDocument(ctx, collLinks, link)
}

func (s *Store) DeleteLink(ctx context.Context, id primitive.ObjectID) error {
	return s.deleteByID(ctx, collLinks, id)
}

// listDocuments returns every document of a collection in store-native order.
func (s *Store) listDocuments(ctx context.Context, coll string) ([]models.Document, error) {
	cur, err := s.collection(coll).Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var docs []models.Document
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

// insertDocument stores a caller-supplied document verbatim.
func (s *Store) insertDocument(ctx context.Context, coll string, doc models.Document) error {
	_, err := s.collection(coll).InsertOne(ctx, doc)
	return err
}

func (s *Store) deleteByID(ctx context.Context, coll string, id primitive.ObjectID) error {
	_, err := s.collection(coll).DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// normalizePost keeps likes and comments JSON-encodable as [] rather than
// null for documents written before those fields existed.
func normalizePost(p *models.Post) {
	if p.Likes == nil {
		p.Likes = []string{}
	}
	if p.Comments == nil {
		p.Comments = []models.Comment{}
	}
}
