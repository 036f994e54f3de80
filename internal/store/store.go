package store

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/relief-service/internal/domain"
	"github.com/spec-kit/relief-service/internal/events"
	"github.com/spec-kit/relief-service/internal/persistence"
)

// Store maintains a consistent, observable view of resource and
// response records sourced from two independently-written resource
// partitions plus a dynamic set of per-user response partitions.
//
// There is no transactional guarantee across the two resource
// partitions: a crash between writing one and the other leaves them
// divergent, and the load step's de-duplication by id (requests
// partition wins ties) is the only mechanism that papers over that.
type Store struct {
	kv         persistence.KV
	dispatcher events.Dispatcher
	logger     *zap.Logger

	mu        sync.RWMutex
	resources []domain.Resource
	responses []domain.ResourceResponse

	now    func() time.Time
	lastID int64
}

// ResponsePatch is a partial update applied to a stored response.
// Nil fields are left untouched.
type ResponsePatch struct {
	Type     *domain.ResponseType
	Category *domain.ResourceCategory
	Title    *string
	Status   *domain.ResponseStatus
}

// New builds a store over the given partition backend.
func New(kv persistence.KV, dispatcher events.Dispatcher, logger *zap.Logger) *Store {
	return &Store{
		kv:         kv,
		dispatcher: dispatcher,
		logger:     logger,
		now:        time.Now,
	}
}

// Start subscribes the store to mutation events and, when the backend
// supports it, to cross-process key-change announcements. Any signal
// triggers a full reload; the store never patches incrementally.
func (s *Store) Start(ctx context.Context) error {
	for _, eventType := range []events.EventType{
		events.EventResourceCreated,
		events.EventResourceUpdated,
		events.EventResponseCreated,
		events.EventResponseUpdated,
	} {
		s.dispatcher.Subscribe(eventType, func(ctx context.Context, _ events.Event) error {
			return s.Load(ctx)
		})
	}

	if feed, ok := s.kv.(persistence.ChangeFeed); ok {
		feed.SubscribeChanges(ctx, func(key string) {
			if !WatchedKey(key) {
				return
			}
			if err := s.Load(ctx); err != nil {
				s.logger.Warn("reload after key change", zap.String("key", key), zap.Error(err))
			}
		})
	}

	return s.Load(ctx)
}

// Load rebuilds the in-memory view from the partitions. Corrupt
// partitions are logged and read as empty; a load never fails on bad
// stored JSON.
func (s *Store) Load(ctx context.Context) error {
	requests := s.readResources(ctx, KeyResourceRequests)
	page := s.readResources(ctx, KeyResources)

	merged := make([]domain.Resource, 0, len(requests)+len(page))
	seen := make(map[string]struct{}, len(requests))
	for _, res := range requests {
		merged = append(merged, res)
		seen[res.ID] = struct{}{}
	}
	for _, res := range page {
		if _, dup := seen[res.ID]; dup {
			continue
		}
		merged = append(merged, res)
		seen[res.ID] = struct{}{}
	}
	if len(merged) == 0 {
		merged = bootstrapResources()
	}

	responses, err := s.loadResponses(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.resources = merged
	s.responses = responses
	s.mu.Unlock()
	return nil
}

// Resources returns a copy of the merged resource view, most recent
// first.
func (s *Store) Resources() []domain.Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Resource, len(s.resources))
	copy(out, s.resources)
	return out
}

// Responses returns a copy of the flattened response view.
func (s *Store) Responses() []domain.ResourceResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.ResourceResponse, len(s.responses))
	copy(out, s.responses)
	return out
}

// AddResource assigns an id and creation timestamp, prepends the record
// to the in-memory view and to its partition, and announces the
// creation. Records carrying a user id land in the requests partition,
// anonymous ones in the page partition.
func (s *Store) AddResource(ctx context.Context, input domain.Resource) (domain.Resource, error) {
	s.mu.Lock()
	id, now := s.nextID()
	input.ID = id
	input.CreatedAt = now
	s.resources = append([]domain.Resource{input}, s.resources...)
	s.mu.Unlock()

	key := KeyResources
	if input.UserID != "" {
		key = KeyResourceRequests
	}
	existing := s.readResources(ctx, key)
	if err := s.writeResources(ctx, key, append([]domain.Resource{input}, existing...)); err != nil {
		return domain.Resource{}, err
	}

	s.publish(ctx, events.New(events.EventResourceCreated, key, events.ResourceCreatedPayload{
		ResourceID: input.ID,
		Title:      input.Title,
		Urgent:     input.Urgent,
	}))
	return input, nil
}

// AddResponse assigns an id and creation timestamp, prepends the record
// to the responding user's partition and the in-memory view, and
// announces the creation.
func (s *Store) AddResponse(ctx context.Context, userID string, input domain.ResourceResponse) (domain.ResourceResponse, error) {
	s.mu.Lock()
	id, now := s.nextID()
	input.ID = id
	input.CreatedAt = now
	s.responses = append([]domain.ResourceResponse{input}, s.responses...)
	s.mu.Unlock()

	key := ResponseKey(userID)
	existing := s.readResponses(ctx, key)
	if err := s.writeResponses(ctx, key, append([]domain.ResourceResponse{input}, existing...)); err != nil {
		return domain.ResourceResponse{}, err
	}

	s.publish(ctx, events.New(events.EventResponseCreated, key, events.ResponseCreatedPayload{
		ResponseID: input.ID,
		RequestID:  input.RequestID,
		UserID:     userID,
	}))
	return input, nil
}

// UpdateResponse rewrites the matching record in the user's partition
// and in memory, leaving non-matching records untouched. A miss returns
// nil with no mutation and no event.
func (s *Store) UpdateResponse(ctx context.Context, userID, responseID string, patch ResponsePatch) (*domain.ResourceResponse, error) {
	key := ResponseKey(userID)
	list := s.readResponses(ctx, key)

	var updated *domain.ResourceResponse
	for i := range list {
		if list[i].ID != responseID {
			continue
		}
		applyResponsePatch(&list[i], patch)
		cp := list[i]
		updated = &cp
		break
	}
	if updated == nil {
		return nil, nil
	}

	if err := s.writeResponses(ctx, key, list); err != nil {
		return nil, err
	}

	s.mu.Lock()
	for i := range s.responses {
		if s.responses[i].ID == responseID {
			s.responses[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	s.publish(ctx, events.New(events.EventResponseUpdated, key, events.ResponseUpdatedPayload{
		ResponseID: responseID,
		UserID:     userID,
		NewStatus:  string(updated.Status),
	}))
	return updated, nil
}

// UpdateResourceStatus patches the record in memory and then
// independently re-reads, patches, and re-writes both resource
// partitions wherever the id appears. Membership was decided by the
// load-time de-duplication, not by provenance tracking, so a mutation
// must touch both partitions. A miss returns nil and changes nothing.
func (s *Store) UpdateResourceStatus(ctx context.Context, id string, status domain.ResourceStatus) (*domain.Resource, error) {
	s.mu.Lock()
	var updated *domain.Resource
	for i := range s.resources {
		if s.resources[i].ID == id {
			s.resources[i].Status = status
			cp := s.resources[i]
			updated = &cp
			break
		}
	}
	s.mu.Unlock()
	if updated == nil {
		return nil, nil
	}

	for _, key := range []string{KeyResourceRequests, KeyResources} {
		list := s.readResources(ctx, key)
		touched := false
		for i := range list {
			if list[i].ID == id {
				list[i].Status = status
				touched = true
			}
		}
		if !touched {
			continue
		}
		if err := s.writeResources(ctx, key, list); err != nil {
			return nil, err
		}
	}

	s.publish(ctx, events.New(events.EventResourceUpdated, "", events.ResourceUpdatedPayload{
		ResourceID: id,
		NewStatus:  string(status),
	}))
	return updated, nil
}

func (s *Store) readResources(ctx context.Context, key string) []domain.Resource {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read partition", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var list []domain.Resource
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("corrupt partition ignored", zap.String("key", key), zap.Error(err))
		return nil
	}
	return list
}

func (s *Store) writeResources(ctx context.Context, key string, list []domain.Resource) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(raw))
}

func (s *Store) readResponses(ctx context.Context, key string) []domain.ResourceResponse {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		s.logger.Warn("read partition", zap.String("key", key), zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}
	var list []domain.ResourceResponse
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.logger.Warn("corrupt partition ignored", zap.String("key", key), zap.Error(err))
		return nil
	}
	return list
}

func (s *Store) writeResponses(ctx context.Context, key string, list []domain.ResourceResponse) error {
	raw, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(raw))
}

// loadResponses scans every per-user response partition and flattens
// the contents. A corrupt partition skips only that user's records.
func (s *Store) loadResponses(ctx context.Context) ([]domain.ResourceResponse, error) {
	keys, err := s.kv.Keys(ctx, ResponseKeyPrefix)
	if err != nil {
		return nil, err
	}
	var all []domain.ResourceResponse
	for _, key := range keys {
		all = append(all, s.readResponses(ctx, key)...)
	}
	return all, nil
}

// nextID issues a time-derived id that is strictly increasing even when
// multiple records are created within the same millisecond. Returns the
// id and the creation timestamp in epoch milliseconds. Caller holds mu.
func (s *Store) nextID() (string, int64) {
	now := s.now().UnixMilli()
	id := now
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	return strconv.FormatInt(id, 10), now
}

func (s *Store) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("publish event", zap.String("type", string(event.Type)), zap.Error(err))
	}
}

func applyResponsePatch(resp *domain.ResourceResponse, patch ResponsePatch) {
	if patch.Type != nil {
		resp.Type = *patch.Type
	}
	if patch.Category != nil {
		resp.Category = *patch.Category
	}
	if patch.Title != nil {
		resp.Title = *patch.Title
	}
	if patch.Status != nil {
		resp.Status = *patch.Status
	}
}
