package payment

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/mshalabi/housemate/internal/database"
	"github.com/mshalabi/housemate/internal/house"
	"github.com/mshalabi/housemate/pkg/metrics"
)

// Common errors
var (
	ErrInvalidAmount       = errors.New("amount must be greater than zero")
	ErrInvalidDate         = errors.New("payment date must be a valid date (YYYY-MM-DD)")
	ErrSelfPayment         = errors.New("cannot make payment to yourself")
	ErrRecipientNotInHouse = errors.New("payment recipient is not a member of this house")
)

// Members is the membership gate and display-identity directory
type Members interface {
	RequireMember(ctx context.Context, userID, houseID string) error
	IsActiveMember(ctx context.Context, userID, houseID string) (bool, error)
	MembersMap(ctx context.Context, houseID string) (map[string]house.Member, error)
}

// Ledger applies balance transfers inside the payment transaction
type Ledger interface {
	ApplyTransfer(ctx context.Context, q database.DBTX, houseID, debtorID, creditorID string, amount float64) error
}

// Store defines the payment persistence the service needs
type Store interface {
	Create(ctx context.Context, q database.DBTX, houseID, fromUserID string, req *CreatePaymentRequest, paymentDate time.Time) (*Payment, error)
	ListByHouse(ctx context.Context, houseID, userID string) ([]*Payment, error)
}

// Service records direct payments between members and reduces the
// corresponding debt on the ledger
type Service struct {
	store   Store
	members Members
	ledger  Ledger
	inTx    func(ctx context.Context, fn func(q database.DBTX) error) error
}

// NewService creates a new payment service
func NewService(db *sql.DB, store Store, members Members, ledger Ledger) *Service {
	return &Service{
		store:   store,
		members: members,
		ledger:  ledger,
		inTx: func(ctx context.Context, fn func(q database.DBTX) error) error {
			return database.InTx(ctx, db, func(tx *sql.Tx) error { return fn(tx) })
		},
	}
}

// CreatePayment validates a payment between two members, persists it and
// reduces the payer's debt in the same transaction. The payer failing the
// membership gate is not-found; the recipient failing it is a validation
// error, since the recipient is input rather than an access check.
func (s *Service) CreatePayment(ctx context.Context, payerID, houseID string, req *CreatePaymentRequest) (*PaymentResponse, error) {
	// Membership comes before input validation so non-members learn
	// nothing about the request's validity.
	if err := s.members.RequireMember(ctx, payerID, houseID); err != nil {
		return nil, err
	}

	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	paymentDate, err := time.Parse("2006-01-02", req.PaymentDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	recipientOK, err := s.members.IsActiveMember(ctx, req.ToUserID, houseID)
	if err != nil {
		return nil, err
	}
	if !recipientOK {
		return nil, ErrRecipientNotInHouse
	}

	if payerID == req.ToUserID {
		return nil, ErrSelfPayment
	}

	var saved *Payment
	err = s.inTx(ctx, func(q database.DBTX) error {
		saved, err = s.store.Create(ctx, q, houseID, payerID, req, paymentDate)
		if err != nil {
			return err
		}

		// A payment from A to B reduces what A owes B: a transfer in
		// the opposite direction with negated magnitude, so the same
		// delta and epsilon machinery applies.
		return s.ledger.ApplyTransfer(ctx, q, houseID, req.ToUserID, payerID, -req.Amount)
	})
	if err != nil {
		return nil, err
	}

	metrics.PaymentsRecorded.Inc()

	members, err := s.members.MembersMap(ctx, houseID)
	if err != nil {
		return nil, err
	}

	return buildResponse(saved, members), nil
}

// ListHousePayments returns payments of a house, optionally restricted to
// those involving the requesting user
func (s *Service) ListHousePayments(ctx context.Context, userID, houseID string, userOnly bool) ([]*PaymentResponse, error) {
	if err := s.members.RequireMember(ctx, userID, houseID); err != nil {
		return nil, err
	}

	filterUser := ""
	if userOnly {
		filterUser = userID
	}

	payments, err := s.store.ListByHouse(ctx, houseID, filterUser)
	if err != nil {
		return nil, err
	}

	members, err := s.members.MembersMap(ctx, houseID)
	if err != nil {
		return nil, err
	}

	responses := make([]*PaymentResponse, len(payments))
	for i, p := range payments {
		responses[i] = buildResponse(p, members)
	}
	return responses, nil
}

func buildResponse(p *Payment, members map[string]house.Member) *PaymentResponse {
	return &PaymentResponse{
		ID:          p.ID,
		HouseID:     p.HouseID,
		Amount:      p.Amount,
		Memo:        p.Memo,
		PaymentDate: p.PaymentDate,
		FromUser:    resolveMember(p.FromUserID, members),
		ToUser:      resolveMember(p.ToUserID, members),
		CreatedAt:   p.CreatedAt,
	}
}

func resolveMember(userID string, members map[string]house.Member) house.Member {
	if m, ok := members[userID]; ok {
		return m
	}
	return house.Member{ID: userID}
}
