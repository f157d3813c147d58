// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package resolver

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-drive-cli/internal/crypto"
	"github.com/MKhiriev/go-drive-cli/internal/logger"
	"github.com/MKhiriev/go-drive-cli/models"
)

// ChildrenPageSize is the number of children requested per listing call.
const ChildrenPageSize = 150

// errNoMatch ends a children scan that found nothing.
var errNoMatch = errors.New("no matching child")

// Resolved is a node reached by the resolver together with the contexts
// needed to work with it.
type Resolved struct {
	ShareID string
	LinkID  string
	Link    models.Link

	// Context is the node's own unlocked key.
	Context *crypto.DecryptedContext
	// ContainerContext decrypts the node's name: the parent folder
	// context, or the share context for the root.
	ContainerContext *crypto.DecryptedContext
	ShareContext     *crypto.DecryptedContext

	// Name is the decrypted name; empty for the root.
	Name string
	// Path is the normalized path of the node.
	Path string
}

// Identity returns the public identity of the node.
func (r *Resolved) Identity() models.NodeIdentity {
	return models.NodeIdentity{
		ShareID: r.ShareID,
		LinkID:  r.LinkID,
		Type:    r.Link.Type,
		Path:    r.Path,
	}
}

// Child is a decrypted entry of a folder listing.
type Child struct {
	Link models.Link
	Name string
}

// Resolver resolves paths of the main share.
type Resolver struct {
	source LinkSource
	nodes  NodeDecryptor
	log    *logger.Logger

	mu   sync.Mutex
	root *Resolved
}

// New returns a resolver reading the tree from source.
func New(source LinkSource, nodes NodeDecryptor, log *logger.Logger) *Resolver {
	return &Resolver{source: source, nodes: nodes, log: log}
}

// Root returns the root folder of the main share: the share of the first
// active volume. The result is kept until [Resolver.Reset].
func (r *Resolver) Root(ctx context.Context) (*Resolved, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.root != nil {
		return r.root, nil
	}

	volumes, err := r.source.ListVolumes(ctx)
	if err != nil {
		return nil, fmt.Errorf("list volumes: %w", err)
	}

	var volume *models.Volume
	for i := range volumes {
		if volumes[i].State == models.VolumeStateActive {
			volume = &volumes[i]
			break
		}
	}
	if volume == nil {
		return nil, ErrNoActiveVolume
	}

	share, err := r.source.GetShare(ctx, volume.Share.ShareID)
	if err != nil {
		return nil, fmt.Errorf("get share %s: %w", volume.Share.ShareID, err)
	}

	shareCtx, err := r.nodes.DecryptShare(share)
	if err != nil {
		return nil, err
	}

	link, err := r.source.GetLink(ctx, share.ShareID, share.LinkID)
	if err != nil {
		return nil, fmt.Errorf("get root link %s: %w", share.LinkID, err)
	}

	rootCtx, err := r.nodes.DecryptRootNode(share.ShareID, shareCtx, link)
	if err != nil {
		return nil, err
	}

	r.root = &Resolved{
		ShareID:          share.ShareID,
		LinkID:           link.LinkID,
		Link:             link,
		Context:          rootCtx,
		ContainerContext: shareCtx,
		ShareContext:     shareCtx,
		Path:             "/",
	}

	r.log.Debug().
		Str("share_id", share.ShareID).
		Str("volume_id", volume.VolumeID).
		Msg("share root resolved")

	return r.root, nil
}

// Reset forgets the cached root.
func (r *Resolver) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.root = nil
}

// Resolve walks p from the share root. An empty path or "/" returns the
// root itself.
func (r *Resolver) Resolve(ctx context.Context, p string) (*Resolved, error) {
	root, err := r.Root(ctx)
	if err != nil {
		return nil, err
	}

	return r.walk(ctx, root, p, splitPath(p))
}

// ResolveFolder resolves p and requires it to be a folder.
func (r *Resolver) ResolveFolder(ctx context.Context, p string) (*Resolved, error) {
	node, err := r.Resolve(ctx, p)
	if err != nil {
		return nil, err
	}

	if !node.Link.IsFolder() {
		return nil, &PathError{Op: "resolve", Path: node.Path, Segment: node.Name, Err: ErrNotAFolder}
	}

	return node, nil
}

// walk descends from root along segments. Every segment, ".." included,
// must follow a folder. On ".." the ancestor is rebuilt
// by walking from the root again; the contexts along the way come from the
// decryptor cache.
func (r *Resolver) walk(ctx context.Context, root *Resolved, p string, segments []string) (*Resolved, error) {
	cur := root
	names := make([]string, 0, len(segments))

	for _, seg := range segments {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if !cur.Link.IsFolder() {
			return nil, &PathError{Op: "resolve", Path: cur.Path, Segment: cur.Name, Err: ErrNotAFolder}
		}

		if seg == ".." {
			if len(names) == 0 {
				return nil, &PathError{Op: "resolve", Path: p, Segment: seg, Err: ErrAboveRoot}
			}
			names = names[:len(names)-1]

			ancestor, err := r.walk(ctx, root, p, names)
			if err != nil {
				return nil, err
			}
			cur = ancestor
			continue
		}

		child, err := r.FindChild(ctx, cur, seg)
		if err != nil {
			if errors.Is(err, errNoMatch) {
				return nil, &PathError{Op: "resolve", Path: joinPath(append(names, seg)), Segment: seg, Err: ErrPathNotFound}
			}
			return nil, err
		}

		names = append(names, seg)
		cur = child
	}

	return cur, nil
}

// FindChild scans the children of folder for name, stopping at the first
// match, and unlocks the matching node.
func (r *Resolver) FindChild(ctx context.Context, folder *Resolved, name string) (*Resolved, error) {
	var found *models.Link

	err := r.scan(ctx, folder, func(link models.Link, childName string) bool {
		if childName == name {
			found = &link
			return true
		}
		return false
	})
	if err != nil {
		return nil, err
	}
	if found == nil {
		return nil, fmt.Errorf("%w: %s", errNoMatch, name)
	}

	nodeCtx, err := r.nodes.DecryptChildNode(folder.ShareID, folder.Context, *found)
	if err != nil {
		return nil, err
	}

	return &Resolved{
		ShareID:          folder.ShareID,
		LinkID:           found.LinkID,
		Link:             *found,
		Context:          nodeCtx,
		ContainerContext: folder.Context,
		ShareContext:     folder.ShareContext,
		Name:             name,
		Path:             NormalizePath(folder.Path + "/" + name),
	}, nil
}

// Children lists the active children of folder with decrypted names.
// Children whose name cannot be decrypted are skipped with a warning.
func (r *Resolver) Children(ctx context.Context, folder *Resolved) ([]Child, error) {
	if !folder.Link.IsFolder() {
		return nil, &PathError{Op: "list", Path: folder.Path, Segment: folder.Name, Err: ErrNotAFolder}
	}

	var children []Child
	err := r.scan(ctx, folder, func(link models.Link, name string) bool {
		children = append(children, Child{Link: link, Name: name})
		return false
	})

	return children, err
}

// scan pages through the active children of folder and calls visit with
// each decrypted name until visit returns true.
func (r *Resolver) scan(ctx context.Context, folder *Resolved, visit func(link models.Link, name string) bool) error {
	for page := 0; ; page++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		links, err := r.source.ListChildren(ctx, folder.ShareID, folder.LinkID, models.PageParams{
			Page:     page,
			PageSize: ChildrenPageSize,
		})
		if err != nil {
			return fmt.Errorf("list children of %s: %w", folder.Path, err)
		}

		for _, link := range links {
			if !link.IsActive() {
				continue
			}

			name, err := r.nodes.DecryptName(folder.Context, link.Name)
			if err != nil {
				r.log.Warn().Err(err).
					Str("link_id", link.LinkID).
					Str("folder", folder.Path).
					Msg("skipping child with undecryptable name")
				continue
			}

			if visit(link, name) {
				return nil
			}
		}

		if len(links) < ChildrenPageSize {
			return nil
		}
	}
}
