// Package refdata keeps the muscle groups and movement types in a freecache
// backed cache. Name lookups are case-insensitive.
package refdata

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/2beens/liftlog/internal/telemetry/tracing"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

var (
	ErrMuscleGroupNotFound  = errors.New("muscle group not found")
	ErrMovementTypeNotFound = errors.New("movement type not found")
)

const (
	megabyte = 1024 * 1024

	muscleGroupPrefix  = "mg:"
	movementTypePrefix = "mt:"

	// names and list entries live in separate key spaces, so no reference
	// name can overwrite a list entry
	nameSegment = "name:"
	listSegment = "list:"
	listLenKey  = "len"
)

type MuscleGroup struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type MovementType struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type loader interface {
	MuscleGroups(ctx context.Context) ([]MuscleGroup, error)
	MovementTypes(ctx context.Context) ([]MovementType, error)
}

type Cache struct {
	loader loader
	cache  *freecache.Cache
	// serializes reloads, lookups stay lock free
	reloadMutex sync.Mutex
	// name keys written by the last reload
	keys map[string]struct{}
}

func NewCache(loader loader, sizeMB int) *Cache {
	if sizeMB <= 0 {
		sizeMB = 1
	}
	return &Cache{
		loader: loader,
		cache:  freecache.NewCache(sizeMB * megabyte),
		keys:   make(map[string]struct{}),
	}
}

// Reload reads both reference tables and replaces the cached entries.
// Entries are overwritten in place and stale names dropped afterwards, so
// concurrent lookups of names that survive the reload never miss.
func (c *Cache) Reload(ctx context.Context) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "refdata.reload")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	c.reloadMutex.Lock()
	defer c.reloadMutex.Unlock()

	muscleGroups, err := c.loader.MuscleGroups(ctx)
	if err != nil {
		return fmt.Errorf("load muscle groups: %w", err)
	}
	movementTypes, err := c.loader.MovementTypes(ctx)
	if err != nil {
		return fmt.Errorf("load movement types: %w", err)
	}

	keys := make(map[string]struct{}, len(muscleGroups)+len(movementTypes))
	for _, mg := range muscleGroups {
		key, err := c.setID(muscleGroupPrefix, mg.Name, mg.ID)
		if err != nil {
			return err
		}
		keys[key] = struct{}{}
	}
	for _, mt := range movementTypes {
		key, err := c.setID(movementTypePrefix, mt.Name, mt.ID)
		if err != nil {
			return err
		}
		keys[key] = struct{}{}
	}
	muscleGroupListKeys, err := setList(c, muscleGroupPrefix, muscleGroups)
	if err != nil {
		return err
	}
	movementTypeListKeys, err := setList(c, movementTypePrefix, movementTypes)
	if err != nil {
		return err
	}
	for _, key := range append(muscleGroupListKeys, movementTypeListKeys...) {
		keys[key] = struct{}{}
	}

	for key := range c.keys {
		if _, ok := keys[key]; !ok {
			c.cache.Del([]byte(key))
		}
	}
	c.keys = keys

	log.Debugf("reference data reloaded: %d muscle groups, %d movement types", len(muscleGroups), len(movementTypes))
	return nil
}

func (c *Cache) MuscleGroups(ctx context.Context) ([]MuscleGroup, error) {
	return getList[MuscleGroup](ctx, c, muscleGroupPrefix)
}

func (c *Cache) MovementTypes(ctx context.Context) ([]MovementType, error) {
	return getList[MovementType](ctx, c, movementTypePrefix)
}

func (c *Cache) MuscleGroupID(ctx context.Context, name string) (int, error) {
	id, found, err := c.getID(ctx, muscleGroupPrefix, name)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrMuscleGroupNotFound, name)
	}
	return id, nil
}

func (c *Cache) MovementTypeID(ctx context.Context, name string) (int, error) {
	id, found, err := c.getID(ctx, movementTypePrefix, name)
	if err != nil {
		return 0, err
	}
	if !found {
		return 0, fmt.Errorf("%w: %s", ErrMovementTypeNotFound, name)
	}
	return id, nil
}

func (c *Cache) setID(prefix, name string, id int) (string, error) {
	key := nameKey(prefix, name)
	if err := c.cache.Set([]byte(key), encodeInt(id), 0); err != nil {
		return "", fmt.Errorf("cache set [%s]: %w", key, err)
	}
	return key, nil
}

// setList stores every item under its own key, so the list length is not
// bound by the freecache entry size limit. The length entry is written last
// and marks the list as loaded. Returns all keys written.
func setList[T any](c *Cache, prefix string, items []T) ([]string, error) {
	keys := make([]string, 0, len(items)+1)
	for i, item := range items {
		itemJson, err := json.Marshal(item)
		if err != nil {
			return nil, fmt.Errorf("marshal list item [%s%d]: %w", prefix, i, err)
		}
		key := listItemKey(prefix, i)
		if err := c.cache.Set([]byte(key), itemJson, 0); err != nil {
			return nil, fmt.Errorf("cache set [%s]: %w", key, err)
		}
		keys = append(keys, key)
	}

	lenKey := prefix + listSegment + listLenKey
	if err := c.cache.Set([]byte(lenKey), encodeInt(len(items)), 0); err != nil {
		return nil, fmt.Errorf("cache set [%s]: %w", lenKey, err)
	}
	return append(keys, lenKey), nil
}

// loaded reports whether the last reload completed for the given prefix.
func (c *Cache) loaded(prefix string) bool {
	_, err := c.cache.Get([]byte(prefix + listSegment + listLenKey))
	return err == nil
}

func (c *Cache) ensureLoaded(ctx context.Context, prefix string) error {
	if c.loaded(prefix) {
		return nil
	}
	log.Debugf("reference data [%s] not cached, reloading", prefix)
	return c.Reload(ctx)
}

func (c *Cache) getID(ctx context.Context, prefix, name string) (int, bool, error) {
	if err := c.ensureLoaded(ctx, prefix); err != nil {
		return 0, false, err
	}
	val, err := c.cache.Get([]byte(nameKey(prefix, name)))
	if errors.Is(err, freecache.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("cache get [%s%s]: %w", prefix, name, err)
	}
	return decodeInt(val), true, nil
}

func getList[T any](ctx context.Context, c *Cache, prefix string) ([]T, error) {
	if err := c.ensureLoaded(ctx, prefix); err != nil {
		return nil, err
	}

	lenKey := prefix + listSegment + listLenKey
	lenVal, err := c.cache.Get([]byte(lenKey))
	if err != nil {
		return nil, fmt.Errorf("cache get [%s]: %w", lenKey, err)
	}

	n := decodeInt(lenVal)
	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		key := listItemKey(prefix, i)
		itemJson, err := c.cache.Get([]byte(key))
		if err != nil {
			return nil, fmt.Errorf("cache get [%s]: %w", key, err)
		}
		var item T
		if err := json.Unmarshal(itemJson, &item); err != nil {
			return nil, fmt.Errorf("unmarshal list item [%s]: %w", key, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func nameKey(prefix, name string) string {
	return prefix + nameSegment + strings.ToLower(strings.TrimSpace(name))
}

func listItemKey(prefix string, i int) string {
	return prefix + listSegment + strconv.Itoa(i)
}

func encodeInt(v int) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v))
	return b
}

func decodeInt(b []byte) int {
	return int(binary.BigEndian.Uint64(b))
}
