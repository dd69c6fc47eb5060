// Package occupancy groups bed records into rooms, resolves slot addresses
// and validates occupancy mutations.
package occupancy

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/dlamayo/boardinghouse/internal/domain/models"
	"github.com/dlamayo/boardinghouse/internal/repository/bedstore"
	"github.com/dlamayo/boardinghouse/internal/topology"
)

// ErrTenantRequired indicates an occupancy write without a tenant name.
var ErrTenantRequired = errors.New("tenant name is required for an occupied bed")

// ErrSlotTaken indicates the slot already has an active record.
var ErrSlotTaken = errors.New("bed slot is already occupied")

// GroupByRoom buckets the non-deleted records under their derived
// "house-room" key, beds sorted by letter within each room.
func GroupByRoom(records []models.BedRecord) map[string][]models.BedRecord {
	groups := make(map[string][]models.BedRecord)
	for _, rec := range records {
		if rec.Deleted() {
			continue
		}
		house, room := topology.DeriveSlot(rec.House, rec.RoomNumber)
		key := topology.Key(house, room)
		groups[key] = append(groups[key], rec)
	}
	for key := range groups {
		beds := groups[key]
		sort.SliceStable(beds, func(i, j int) bool {
			return beds[i].BedNumber < beds[j].BedNumber
		})
	}
	return groups
}

// GetBedBySlot finds the active record at a slot address, applying the same
// house derivation used for grouping. Trashed records do not hold a slot.
func GetBedBySlot(records []models.BedRecord, house, room, bedLetter string) *models.BedRecord {
	for i := range records {
		rec := &records[i]
		if rec.Deleted() {
			continue
		}
		h, r := topology.DeriveSlot(rec.House, rec.RoomNumber)
		if h == house && r == room && rec.BedNumber == bedLetter {
			return rec
		}
	}
	return nil
}

// SlotCount returns how many bed slots a room displays: the configured count,
// or more when storage already holds more records than the nominal layout.
// An existing occupant is never hidden.
func SlotCount(house, room string, existing int) int {
	configured := topology.BedCount(house, room)
	if existing > configured {
		return existing
	}
	return configured
}

// SlotView pairs a bed letter with its record, nil when the slot is empty.
type SlotView struct {
	BedNumber string            `json:"bedNumber"`
	Bed       *models.BedRecord `json:"bed,omitempty"`
}

// RoomView is one room in display order with its resolved slots.
type RoomView struct {
	House string     `json:"house"`
	Room  string     `json:"room"`
	Slots []SlotView `json:"slots"`
}

// Rooms lays the records out over the configured room list, appending any
// rooms found in storage that the configuration does not know about.
func Rooms(records []models.BedRecord) []RoomView {
	groups := GroupByRoom(records)
	seen := make(map[string]bool)

	var views []RoomView
	for _, room := range topology.DefaultRooms {
		key := topology.Key(room.House, room.Number)
		seen[key] = true
		views = append(views, roomView(room.House, room.Number, groups[key]))
	}

	var extras []string
	for key := range groups {
		if !seen[key] {
			extras = append(extras, key)
		}
	}
	sort.Strings(extras)
	for _, key := range extras {
		house, room, _ := strings.Cut(key, "-")
		views = append(views, roomView(house, room, groups[key]))
	}
	return views
}

func roomView(house, room string, beds []models.BedRecord) RoomView {
	count := SlotCount(house, room, len(beds))
	byLetter := make(map[string]*models.BedRecord, len(beds))
	for i := range beds {
		byLetter[beds[i].BedNumber] = &beds[i]
	}

	letters := topology.BedLetters(count)
	slotted := make(map[string]bool, len(letters))
	slots := make([]SlotView, 0, count)
	for _, letter := range letters {
		slotted[letter] = true
		slots = append(slots, SlotView{BedNumber: letter, Bed: byLetter[letter]})
	}
	// Records whose bed numbers fall outside the generated letters still get
	// a slot of their own.
	for i := range beds {
		if !slotted[beds[i].BedNumber] {
			slots = append(slots, SlotView{BedNumber: beds[i].BedNumber, Bed: &beds[i]})
		}
	}
	return RoomView{House: house, Room: room, Slots: slots}
}

// Service runs occupancy mutations against the bed store.
type Service struct {
	store  bedstore.Store
	logger *zap.Logger
}

// NewService wires an occupancy service instance.
func NewService(store bedstore.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}
}

// AssignRequest carries the fields for placing a tenant into a slot.
type AssignRequest struct {
	House       string `json:"house"`
	RoomNumber  string `json:"roomNumber"`
	BedNumber   string `json:"bedNumber"`
	TenantName  string `json:"tenantName"`
	TenantPhone string `json:"tenantPhone"`
	MoveInDate  string `json:"moveInDate"`
	Notes       string `json:"notes"`
}

// AssignTenant creates an occupied record at a free slot.
func (s *Service) AssignTenant(ctx context.Context, req AssignRequest) (string, error) {
	if strings.TrimSpace(req.TenantName) == "" {
		return "", ErrTenantRequired
	}

	house, room := topology.DeriveSlot(req.House, req.RoomNumber)

	records, err := s.store.List(ctx)
	if err != nil {
		return "", fmt.Errorf("load bed records: %w", err)
	}
	if existing := GetBedBySlot(records, house, room, req.BedNumber); existing != nil {
		return "", ErrSlotTaken
	}

	rec := models.BedRecord{
		House:       house,
		RoomNumber:  room,
		BedNumber:   req.BedNumber,
		Status:      models.BedOccupied,
		TenantName:  strings.TrimSpace(req.TenantName),
		TenantPhone: req.TenantPhone,
		MoveInDate:  req.MoveInDate,
		Notes:       req.Notes,
	}

	id, err := s.store.Create(ctx, rec)
	if err != nil {
		return "", fmt.Errorf("create bed record: %w", err)
	}
	s.logger.Info("tenant assigned", zap.String("id", id), zap.String("slot", topology.Key(house, room)+"-"+req.BedNumber))
	return id, nil
}

// EditRequest is a partial occupancy edit. Nil fields stay untouched.
type EditRequest struct {
	Status      *models.BedStatus `json:"status"`
	TenantName  *string           `json:"tenantName"`
	TenantPhone *string           `json:"tenantPhone"`
	MoveInDate  *string           `json:"moveInDate"`
	Notes       *string           `json:"notes"`
}

// UpdateBed applies a partial edit, holding the occupied-implies-tenant
// invariant.
func (s *Service) UpdateBed(ctx context.Context, id string, req EditRequest) error {
	records, err := s.store.List(ctx)
	if err != nil {
		return fmt.Errorf("load bed records: %w", err)
	}

	var current *models.BedRecord
	for i := range records {
		if records[i].ID == id {
			current = &records[i]
			break
		}
	}
	if current == nil {
		return bedstore.ErrNotFound
	}

	name := current.TenantName
	if req.TenantName != nil {
		name = *req.TenantName
	}
	var status models.BedStatus
	if strings.TrimSpace(name) == "" {
		// A bed cannot be marked occupied without a tenant; clearing the
		// tenant frees the bed.
		if req.Status != nil && *req.Status == models.BedOccupied {
			return ErrTenantRequired
		}
		status = models.BedAvailable
	} else {
		status = models.BedOccupied
	}

	patch := bedstore.BedPatch{
		Status:      &status,
		TenantName:  req.TenantName,
		TenantPhone: req.TenantPhone,
		MoveInDate:  req.MoveInDate,
		Notes:       req.Notes,
	}
	return s.store.Update(ctx, id, patch)
}
