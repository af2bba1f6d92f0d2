package fileService

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"document-service/internal/model/document"
	"document-service/internal/storagekey"
)

// cachedTree is the read-through entry point of the tree builder.
func (s *FileService) cachedTree(ctx context.Context, rootPrefix string) (*document.FolderNode, error) {
	if s.cache != nil {
		if tree, err := s.cache.Get(ctx, rootPrefix); err == nil && tree != nil {
			return tree, nil
		}
	}
	tree, err := s.buildTree(ctx, rootPrefix)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		_ = s.cache.Set(ctx, rootPrefix, tree)
	}
	return tree, nil
}

// buildTree walks the delimiter-grouped listing under rootPrefix and returns
// the virtual subtree rooted there. Sibling subfolders are fetched
// concurrently; children are sorted by name so the result is deterministic.
// An empty prefix yields an empty node. A failed listing fails the build.
func (s *FileService) buildTree(ctx context.Context, rootPrefix string) (*document.FolderNode, error) {
	listing, err := s.storage.ListLevel(ctx, rootPrefix)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %q: %v", document.ErrUpstream, rootPrefix, err)
	}

	node := &document.FolderNode{
		Name:       storagekey.BaseName(rootPrefix),
		Subfolders: make([]document.FolderNode, len(listing.Prefixes)),
		Files:      []document.FileEntry{},
	}

	g, gctx := errgroup.WithContext(ctx)
	for i, prefix := range listing.Prefixes {
		i, prefix := i, prefix
		g.Go(func() error {
			child, err := s.buildTree(gctx, prefix)
			if err != nil {
				return err
			}
			node.Subfolders[i] = *child
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.Slice(node.Subfolders, func(i, j int) bool {
		return node.Subfolders[i].Name < node.Subfolders[j].Name
	})

	for _, key := range listing.Keys {
		if storagekey.IsPlaceholder(key) {
			continue
		}
		entry := document.FileEntry{
			Name:       storagekey.BaseName(key),
			StorageKey: key,
		}
		// An object without a database row still lists, with no id.
		record, err := s.fileRepo.GetByStorageKey(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("%w: file record lookup for %q: %v", document.ErrUpstream, key, err)
		}
		if record != nil {
			id := record.ID
			entry.ID = &id
		}
		node.Files = append(node.Files, entry)
	}

	return node, nil
}

// Reconcile diffs a program's stored objects against its file records and
// reports both directions of divergence. It never repairs anything; the
// upload path has no cross-store atomicity and this is how the gap is
// observed.
func (s *FileService) Reconcile(ctx context.Context, programID uint64) (*document.ReconcileReport, error) {
	program, comp, err := s.resolveProgram(ctx, programID)
	if err != nil {
		return nil, err
	}

	prefix := storagekey.ProgramPrefix(comp.CNPJ, program.Name)
	keys, err := s.storage.ListAll(ctx, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %q: %v", document.ErrUpstream, prefix, err)
	}

	records, err := s.fileRepo.ListByProgram(ctx, programID)
	if err != nil {
		return nil, fmt.Errorf("%w: listing file records: %v", document.ErrUpstream, err)
	}

	inStorage := make(map[string]struct{}, len(keys))
	report := &document.ReconcileReport{
		ProgramID:     programID,
		OrphanObjects: []string{},
		DanglingRows:  []string{},
	}

	recorded := make(map[string]struct{}, len(records))
	for _, r := range records {
		recorded[r.StorageKey] = struct{}{}
	}

	for _, key := range keys {
		if storagekey.IsPlaceholder(key) {
			continue
		}
		inStorage[key] = struct{}{}
		if _, ok := recorded[key]; !ok {
			report.OrphanObjects = append(report.OrphanObjects, key)
		}
	}
	for _, r := range records {
		if _, ok := inStorage[r.StorageKey]; !ok {
			report.DanglingRows = append(report.DanglingRows, r.StorageKey)
		}
	}

	sort.Strings(report.OrphanObjects)
	sort.Strings(report.DanglingRows)
	return report, nil
}
