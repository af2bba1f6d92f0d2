package treeCache_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"

	"document-service/internal/model/document"
	"document-service/internal/repository/treeCache"
)

func TestTreeCache(t *testing.T) {
	ctx := context.Background()
	db, mock := redismock.NewClientMock()
	cache := treeCache.New(db, time.Minute)

	tree := &document.FolderNode{
		Name: "LDB_2021",
		Subfolders: []document.FolderNode{
			{Name: "CONTÁBIL", Subfolders: []document.FolderNode{}, Files: []document.FileEntry{}},
		},
		Files: []document.FileEntry{},
	}
	raw, err := json.Marshal(tree)
	if err != nil {
		t.Fatal(err)
	}

	t.Run("Set", func(t *testing.T) {
		mock.ExpectSet("foldertree:12345678000199/LDB_2021/", raw, time.Minute).SetVal("OK")
		err := cache.Set(ctx, "12345678000199/LDB_2021/", tree)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get hit", func(t *testing.T) {
		mock.ExpectGet("foldertree:12345678000199/LDB_2021/").SetVal(string(raw))
		got, err := cache.Get(ctx, "12345678000199/LDB_2021/")
		assert.NoError(t, err)
		assert.Equal(t, tree, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Get miss", func(t *testing.T) {
		mock.ExpectGet("foldertree:unknown/").RedisNil()
		got, err := cache.Get(ctx, "unknown/")
		assert.NoError(t, err)
		assert.Nil(t, got)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Invalidate", func(t *testing.T) {
		mock.ExpectDel("foldertree:12345678000199/LDB_2021/").SetVal(1)
		err := cache.Invalidate(ctx, "12345678000199/LDB_2021/")
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
