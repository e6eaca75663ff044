package reminder

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	c "medmate/internal/core/domain/common"
	"medmate/internal/core/domain/family"
)

type FakeReminderRepository struct {
	Reminders   []Reminder
	Locked      []ID
	ReturnError error
	lock        sync.Mutex
}

func NewFakeReminderRepository() *FakeReminderRepository {
	return &FakeReminderRepository{}
}

func (r *FakeReminderRepository) Create(ctx context.Context, input CreateInput) (rem Reminder, err error) {
	if r.ReturnError != nil {
		return rem, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	maxID := ID(0)
	for _, existing := range r.Reminders {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	rem = Reminder{
		ID:             maxID + 1,
		CreatedBy:      input.CreatedBy,
		FamilyMemberID: input.FamilyMemberID,
		PrescriptionID: input.PrescriptionID,
		Medication:     input.Medication,
		CreatedAt:      input.CreatedAt,
		UpdatedAt:      input.CreatedAt,
		Schedule:       input.Schedule,
	}
	r.Reminders = append(r.Reminders, rem)
	return rem, nil
}

func (r *FakeReminderRepository) Lock(ctx context.Context, id ID) error {
	if r.ReturnError != nil {
		return r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	r.Locked = append(r.Locked, id)
	return nil
}

func (r *FakeReminderRepository) GetByID(ctx context.Context, id ID) (rem Reminder, err error) {
	if r.ReturnError != nil {
		return rem, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, rem := range r.Reminders {
		if rem.ID == id {
			return rem, nil
		}
	}
	return rem, ErrReminderDoesNotExist
}

func (r *FakeReminderRepository) Read(ctx context.Context, options ReadOptions) ([]Reminder, error) {
	if r.ReturnError != nil {
		return nil, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	reminders := r.filter(options)

	switch options.OrderBy {
	case OrderByIDDesc:
		sort.SliceStable(reminders, func(i, j int) bool { return reminders[i].ID > reminders[j].ID })
	case OrderByAnchorAtAsc:
		sort.SliceStable(reminders, func(i, j int) bool { return reminders[i].AnchorAt.Before(reminders[j].AnchorAt) })
	case OrderByAnchorAtDesc:
		sort.SliceStable(reminders, func(i, j int) bool { return reminders[i].AnchorAt.After(reminders[j].AnchorAt) })
	default:
		sort.SliceStable(reminders, func(i, j int) bool { return reminders[i].ID < reminders[j].ID })
	}

	if options.Offset >= uint(len(reminders)) {
		return []Reminder{}, nil
	}
	reminders = reminders[options.Offset:]
	if options.Limit.IsPresent && options.Limit.Value < uint(len(reminders)) {
		reminders = reminders[:options.Limit.Value]
	}
	return reminders, nil
}

func (r *FakeReminderRepository) Count(ctx context.Context, options ReadOptions) (uint, error) {
	if r.ReturnError != nil {
		return 0, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	return uint(len(r.filter(options))), nil
}

func (r *FakeReminderRepository) Update(ctx context.Context, input UpdateInput) (rem Reminder, err error) {
	if r.ReturnError != nil {
		return rem, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix := range r.Reminders {
		if r.Reminders[ix].ID != input.ID {
			continue
		}
		r.Reminders[ix].Medication = input.Medication
		r.Reminders[ix].Schedule = input.Schedule
		if input.DoPrescriptionIDUpdate {
			r.Reminders[ix].PrescriptionID = input.PrescriptionID
		}
		r.Reminders[ix].UpdatedAt = input.UpdatedAt
		return r.Reminders[ix], nil
	}
	return rem, ErrReminderDoesNotExist
}

func (r *FakeReminderRepository) Delete(ctx context.Context, id ID) error {
	if r.ReturnError != nil {
		return r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for ix, rem := range r.Reminders {
		if rem.ID == id {
			r.Reminders = append(r.Reminders[:ix], r.Reminders[ix+1:]...)
			return nil
		}
	}
	return ErrReminderDoesNotExist
}

func (r *FakeReminderRepository) DetachFamilyMember(ctx context.Context, id family.ID) (uint, error) {
	if r.ReturnError != nil {
		return 0, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	detached := uint(0)
	for ix := range r.Reminders {
		if r.Reminders[ix].FamilyMemberID.IsPresent && r.Reminders[ix].FamilyMemberID.Value == id {
			r.Reminders[ix].FamilyMemberID = c.Optional[family.ID]{}
			detached++
		}
	}
	return detached, nil
}

func (r *FakeReminderRepository) filter(options ReadOptions) []Reminder {
	reminders := make([]Reminder, 0, len(r.Reminders))
	for _, rem := range r.Reminders {
		if options.CreatedByEquals.IsPresent && rem.CreatedBy != options.CreatedByEquals.Value {
			continue
		}
		if options.FamilyMemberIDEquals.IsPresent &&
			(!rem.FamilyMemberID.IsPresent || rem.FamilyMemberID.Value != options.FamilyMemberIDEquals.Value) {
			continue
		}
		if options.IsActiveEquals.IsPresent && rem.IsActive != options.IsActiveEquals.Value {
			continue
		}
		if options.AnchorAtNotAfter.IsPresent && rem.AnchorAt.After(options.AnchorAtNotAfter.Value) {
			continue
		}
		reminders = append(reminders, rem)
	}
	return reminders
}

type FakeAcknowledgmentRepository struct {
	Acknowledgments []Acknowledgment
	ReturnError     error
	lock            sync.Mutex
}

func NewFakeAcknowledgmentRepository() *FakeAcknowledgmentRepository {
	return &FakeAcknowledgmentRepository{}
}

func (r *FakeAcknowledgmentRepository) Create(
	ctx context.Context,
	input CreateAcknowledgmentInput,
) (a Acknowledgment, err error) {
	if r.ReturnError != nil {
		return a, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	for _, existing := range r.Acknowledgments {
		if existing.ReminderID == input.ReminderID && existing.OccurrenceAt.Equal(input.OccurrenceAt) {
			return a, ErrAlreadyAcknowledged
		}
	}
	a = Acknowledgment{
		ID:             int64(len(r.Acknowledgments) + 1),
		ReminderID:     input.ReminderID,
		OccurrenceAt:   input.OccurrenceAt,
		AcknowledgedAt: input.AcknowledgedAt,
	}
	r.Acknowledgments = append(r.Acknowledgments, a)
	return a, nil
}

func (r *FakeAcknowledgmentRepository) Read(
	ctx context.Context,
	options AcknowledgmentReadOptions,
) ([]Acknowledgment, error) {
	if r.ReturnError != nil {
		return nil, r.ReturnError
	}
	r.lock.Lock()
	defer r.lock.Unlock()
	ids := make(map[ID]struct{}, len(options.ReminderIDIn))
	for _, id := range options.ReminderIDIn {
		ids[id] = struct{}{}
	}
	acknowledgments := make([]Acknowledgment, 0)
	for _, a := range r.Acknowledgments {
		if _, ok := ids[a.ReminderID]; !ok {
			continue
		}
		if a.OccurrenceAt.Before(options.OccurrenceAtFrom) || a.OccurrenceAt.After(options.OccurrenceAtTo) {
			continue
		}
		acknowledgments = append(acknowledgments, a)
	}
	return acknowledgments, nil
}

type FakeOccurrenceClaimer struct {
	Claimed     map[string]struct{}
	ReturnError error
	lock        sync.Mutex
}

func NewFakeOccurrenceClaimer() *FakeOccurrenceClaimer {
	return &FakeOccurrenceClaimer{Claimed: make(map[string]struct{})}
}

func (c *FakeOccurrenceClaimer) Claim(ctx context.Context, occurrence Occurrence) (bool, error) {
	if c.ReturnError != nil {
		return false, c.ReturnError
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	key := fmt.Sprintf("%d::%d", occurrence.ReminderID, occurrence.At.UnixNano())
	if _, ok := c.Claimed[key]; ok {
		return false, nil
	}
	c.Claimed[key] = struct{}{}
	return true, nil
}

type FakeOccurrencePublisher struct {
	Published   []Occurrence
	ReturnError error
	lock        sync.Mutex
}

func NewFakeOccurrencePublisher() *FakeOccurrencePublisher {
	return &FakeOccurrencePublisher{}
}

func (p *FakeOccurrencePublisher) PublishOccurrence(ctx context.Context, occurrence Occurrence) error {
	if p.ReturnError != nil {
		return p.ReturnError
	}
	p.lock.Lock()
	defer p.lock.Unlock()
	p.Published = append(p.Published, occurrence)
	return nil
}

type FakeOccurrenceNotifier struct {
	Notified    []Occurrence
	ReturnError error
	lock        sync.Mutex
}

func NewFakeOccurrenceNotifier() *FakeOccurrenceNotifier {
	return &FakeOccurrenceNotifier{}
}

func (n *FakeOccurrenceNotifier) NotifyOccurrence(ctx context.Context, occurrence Occurrence) error {
	if n.ReturnError != nil {
		return n.ReturnError
	}
	n.lock.Lock()
	defer n.lock.Unlock()
	n.Notified = append(n.Notified, occurrence)
	return nil
}

type FakeCalendarExporter struct {
	Exported    []Reminder
	ReturnError error
}

func NewFakeCalendarExporter() *FakeCalendarExporter {
	return &FakeCalendarExporter{}
}

func (e *FakeCalendarExporter) Export(w io.Writer, reminders []Reminder, now time.Time) error {
	if e.ReturnError != nil {
		return e.ReturnError
	}
	e.Exported = reminders
	_, err := fmt.Fprintf(w, "BEGIN:VCALENDAR\r\nX-REMINDERS:%d\r\nEND:VCALENDAR\r\n", len(reminders))
	return err
}
