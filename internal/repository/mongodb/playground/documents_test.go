package playground

import (
	"testing"
	"time"

	models "cipherstudio/internal/domain/models/playground"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

func TestFileDocument_RootKeepsNullParent(t *testing.T) {
	node := &models.FileNode{
		ID:        models.NewID(),
		ProjectID: models.NewID(),
		Name:      "App.js",
		Type:      models.NodeTypeFile,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	raw, err := bson.Marshal(toFileDocument(node))
	require.NoError(t, err)

	parent, err := bson.Raw(raw).LookupErr("parentId")
	require.NoError(t, err, "parentId must be present for the sibling index")
	assert.Equal(t, bsontype.Null, parent.Type)

	id, err := bson.Raw(raw).LookupErr("_id")
	require.NoError(t, err)
	assert.Equal(t, node.ID, id.StringValue())
}

func TestProjectDocument_OwnerMapping(t *testing.T) {
	owned := &models.Project{ID: models.NewID(), Owner: models.OwnedBy("alice")}
	doc := toProjectDocument(owned)
	require.NotNil(t, doc.UserID)
	assert.Equal(t, "alice", *doc.UserID)
	assert.Equal(t, "alice", doc.toModel().Owner.UserID())

	public := &models.Project{ID: models.NewID(), Owner: models.Unowned()}
	doc = toProjectDocument(public)
	assert.Nil(t, doc.UserID)
	assert.False(t, doc.toModel().Owner.IsOwned())
}
