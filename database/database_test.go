package database

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/xwby268/BIO-LINK-2/models"
)

// testStore connects to the local test Mongo instance, skipping the test
// when none is running.
func testStore(t *testing.T) *Store {
	t.Helper()

	s, err := StorageConnect(context.Background())
	if err != nil {
		t.Skipf("test DB unavailable: %v", err)
	}

	t.Cleanup(func() {
		if err := RestoreDB(s); err != nil {
			t.Logf("WARNING: unable to restore DB state after the test: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.Close(ctx)
	})

	return s
}

func TestStore_CreatePost_RequiresContent(t *testing.T) {
	// Validation runs before any collection access, so no DB is needed.
	s := &Store{}

	_, err := s.CreatePost(context.Background(), models.Post{Image: "pic.png"})
	if err != ErrContentRequired {
		t.Errorf("want ErrContentRequired, got %v", err)
	}
}

func TestStore_CreatePost_AssignsDefaults(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	got, err := s.CreatePost(ctx, models.Post{Content: "hello"})
	if err != nil {
		t.Fatalf("unexpected error creating post: %v", err)
	}

	if got.ID.IsZero() {
		t.Error("post id was not assigned")
	}
	if got.Content != "hello" {
		t.Errorf("want content %q, got %q", "hello", got.Content)
	}
	if got.Date.IsZero() {
		t.Error("post date was not assigned")
	}
	if got.Likes == nil || len(got.Likes) != 0 {
		t.Errorf("want empty likes, got %v", got.Likes)
	}
	if got.Comments == nil || len(got.Comments) != 0 {
		t.Errorf("want empty comments, got %v", got.Comments)
	}

	var stored models.Post
	err = s.collection(collPosts).FindOne(ctx, bson.M{"_id": got.ID}).Decode(&stored)
	if err != nil {
		t.Fatalf("unexpected error retrieving post from DB: %v", err)
	}
	if stored.Content != "hello" {
		t.Errorf("want stored content %q, got %q", "hello", stored.Content)
	}
}

func TestStore_ListPosts_NewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	base := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	for i, content := range []string{"first", "second", "third"} {
		post := models.Post{
			ID:       primitive.NewObjectID(),
			Content:  content,
			Date:     base.Add(time.Duration(i) * time.Hour),
			Likes:    []string{},
			Comments: []models.Comment{},
		}
		if _, err := s.collection(collPosts).InsertOne(ctx, post); err != nil {
			t.Fatalf("unexpected error inserting post %q: %v", content, err)
		}
	}

	got, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing posts: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("want 3 posts, got %d", len(got))
	}

	want := []string{"third", "second", "first"}
	for i, w := range want {
		if got[i].Content != w {
			t.Errorf("position %d: want %q, got %q", i, w, got[i].Content)
		}
	}
}

func TestStore_ToggleLike(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, models.Post{Content: "likeable"})
	if err != nil {
		t.Fatalf("unexpected error creating post: %v", err)
	}

	likes, err := s.ToggleLike(ctx, post.ID, "alice")
	if err != nil {
		t.Fatalf("unexpected error toggling like: %v", err)
	}
	if len(likes) != 1 || likes[0] != "alice" {
		t.Errorf("want likes [alice], got %v", likes)
	}

	likes, err = s.ToggleLike(ctx, post.ID, "bob")
	if err != nil {
		t.Fatalf("unexpected error toggling like: %v", err)
	}
	if len(likes) != 2 {
		t.Errorf("want 2 likes, got %v", likes)
	}

	// Toggling twice is an involution: the set returns to its prior value.
	likes, err = s.ToggleLike(ctx, post.ID, "bob")
	if err != nil {
		t.Fatalf("unexpected error toggling like: %v", err)
	}
	if len(likes) != 1 || likes[0] != "alice" {
		t.Errorf("want likes [alice] after un-like, got %v", likes)
	}
}

func TestStore_ToggleLike_PostNotFound(t *testing.T) {
	s := testStore(t)

	_, err := s.ToggleLike(context.Background(), primitive.NewObjectID(), "alice")
	if err != ErrPostNotFound {
		t.Errorf("want ErrPostNotFound, got %v", err)
	}
}

func TestStore_AddComment(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, models.Post{Content: "commentable"})
	if err != nil {
		t.Fatalf("unexpected error creating post: %v", err)
	}

	first, err := s.AddComment(ctx, post.ID, "hi", "alice")
	if err != nil {
		t.Fatalf("unexpected error adding comment: %v", err)
	}
	if first.ID == "" {
		t.Error("comment id was not assigned")
	}
	if first.Date.IsZero() {
		t.Error("comment date was not assigned")
	}
	if first.Text != "hi" || first.User != "alice" {
		t.Errorf("want comment hi/alice, got %q/%q", first.Text, first.User)
	}

	second, err := s.AddComment(ctx, post.ID, "hello", "bob")
	if err != nil {
		t.Fatalf("unexpected error adding comment: %v", err)
	}
	if second.ID == first.ID {
		t.Errorf("comment ids collide: %s", first.ID)
	}

	var stored models.Post
	err = s.collection(collPosts).FindOne(ctx, bson.M{"_id": post.ID}).Decode(&stored)
	if err != nil {
		t.Fatalf("unexpected error retrieving post from DB: %v", err)
	}
	if len(stored.Comments) != 2 {
		t.Fatalf("want 2 stored comments, got %d", len(stored.Comments))
	}
	if stored.Comments[0].Text != "hi" || stored.Comments[1].Text != "hello" {
		t.Errorf("comments out of append order: %+v", stored.Comments)
	}
}

func TestStore_AddComment_MissingPostIsLenient(t *testing.T) {
	s := testStore(t)

	comment, err := s.AddComment(context.Background(), primitive.NewObjectID(), "hi", "alice")
	if err != nil {
		t.Fatalf("want lenient success on missing post, got %v", err)
	}
	if comment.ID == "" {
		t.Error("comment id was not assigned")
	}
}

func TestStore_Settings_UpsertAndMerge(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	got, err := s.Settings(ctx)
	if err != nil {
		t.Fatalf("unexpected error reading settings: %v", err)
	}
	if got != nil {
		t.Fatalf("want no settings before first write, got %v", got)
	}

	if err := s.UpdateSettings(ctx, models.Document{"theme": "dark"}); err != nil {
		t.Fatalf("unexpected error writing settings: %v", err)
	}
	if err := s.UpdateSettings(ctx, models.Document{"title": "my page"}); err != nil {
		t.Fatalf("unexpected error writing settings: %v", err)
	}

	got, err = s.Settings(ctx)
	if err != nil {
		t.Fatalf("unexpected error reading settings: %v", err)
	}
	if got["theme"] != "dark" {
		t.Errorf("want theme dark preserved across writes, got %v", got["theme"])
	}
	if got["title"] != "my page" {
		t.Errorf("want title from second write, got %v", got["title"])
	}
	if got["type"] != "general" {
		t.Errorf("want discriminator general, got %v", got["type"])
	}

	// The discriminator cannot be overwritten by a patch.
	if err := s.UpdateSettings(ctx, models.Document{"type": "other"}); err != nil {
		t.Fatalf("unexpected error writing settings: %v", err)
	}
	got, err = s.Settings(ctx)
	if err != nil {
		t.Fatalf("unexpected error reading settings: %v", err)
	}
	if got["type"] != "general" {
		t.Errorf("want discriminator forced to general, got %v", got["type"])
	}

	// Exactly one singleton document regardless of how often it is written.
	cnt, err := s.collection(collSettings).CountDocuments(ctx, bson.M{"type": "general"})
	if err != nil {
		t.Fatalf("unexpected error counting settings: %v", err)
	}
	if cnt != 1 {
		t.Errorf("want 1 settings document, got %d", cnt)
	}
}

func TestStore_ProductsAndLinks(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.AddProduct(ctx, models.Document{"name": "mug", "price": 12}); err != nil {
		t.Fatalf("unexpected error adding product: %v", err)
	}
	products, err := s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing products: %v", err)
	}
	if len(products) != 1 {
		t.Fatalf("want 1 product, got %d", len(products))
	}
	if products[0]["name"] != "mug" {
		t.Errorf("want product name mug, got %v", products[0]["name"])
	}

	if err := s.AddLink(ctx, models.Document{"label": "shop", "href": "https://example.com"}); err != nil {
		t.Fatalf("unexpected error adding link: %v", err)
	}
	links, err := s.ListLinks(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing links: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("want 1 link, got %d", len(links))
	}

	// Deletes are idempotent: unknown ids still succeed.
	if err := s.DeleteProduct(ctx, primitive.NewObjectID()); err != nil {
		t.Errorf("want idempotent product delete, got %v", err)
	}
	if err := s.DeleteLink(ctx, primitive.NewObjectID()); err != nil {
		t.Errorf("want idempotent link delete, got %v", err)
	}

	id, ok := products[0]["_id"].(primitive.ObjectID)
	if !ok {
		t.Fatalf("product _id has unexpected type %T", products[0]["_id"])
	}
	if err := s.DeleteProduct(ctx, id); err != nil {
		t.Fatalf("unexpected error deleting product: %v", err)
	}
	products, err = s.ListProducts(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing products: %v", err)
	}
	if len(products) != 0 {
		t.Errorf("want empty catalog after delete, got %v", products)
	}
}

func TestStore_DeletePost_Idempotent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	post, err := s.CreatePost(ctx, models.Post{Content: "short-lived"})
	if err != nil {
		t.Fatalf("unexpected error creating post: %v", err)
	}

	if err := s.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("unexpected error deleting post: %v", err)
	}
	// Second delete of the same id still succeeds.
	if err := s.DeletePost(ctx, post.ID); err != nil {
		t.Errorf("want idempotent post delete, got %v", err)
	}

	posts, err := s.ListPosts(ctx)
	if err != nil {
		t.Fatalf("unexpected error listing posts: %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("want empty feed after delete, got %d posts", len(posts))
	}
}
