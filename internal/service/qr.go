package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/rlaig/ezorder/internal/access"
	"github.com/rlaig/ezorder/internal/filter"
	"github.com/rlaig/ezorder/internal/transform"
	"github.com/rlaig/ezorder/internal/view"
)

type QRService struct{ W *access.Wrapper }

func NewQRService(w *access.Wrapper) *QRService { return &QRService{W: w} }

func (s *QRService) List(ctx context.Context, merchantID string) ([]view.QRCode, error) {
	return access.GetFullList(ctx, s.W, transform.QRCodes, access.Options{
		Filter: filter.Eq("merchant_id", merchantID),
		Sort:   "-created",
	})
}

// Create issues a new active code of the form <merchantID>-<suffix>. The
// code, usage count and last use are never taken from the caller.
func (s *QRService) Create(ctx context.Context, merchantID string, in view.QRCodeInput) (view.QRCode, error) {
	code := NewQRCode(merchantID)
	in.MerchantID = &merchantID
	in.QRCode = &code
	in.TableName = trimmed(in.TableName)
	in.LocationName = trimmed(in.LocationName)
	in.IsActive = lo.CoalesceOrEmpty(in.IsActive, lo.ToPtr(true))
	in.UsageCount = lo.ToPtr(0)
	in.LastUsed = nil
	return access.Create(ctx, s.W, transform.QRCodes, in)
}

// Update changes the labels or the active flag.
func (s *QRService) Update(ctx context.Context, merchantID, id string, in view.QRCodeInput) (view.QRCode, error) {
	if err := s.own(ctx, merchantID, id); err != nil {
		return view.QRCode{}, err
	}
	return access.Update(ctx, s.W, transform.QRCodes, id, view.QRCodeInput{
		TableName:    trimmed(in.TableName),
		LocationName: trimmed(in.LocationName),
		IsActive:     in.IsActive,
	})
}

func (s *QRService) Delete(ctx context.Context, merchantID, id string) error {
	if err := s.own(ctx, merchantID, id); err != nil {
		return err
	}
	return access.Delete(ctx, s.W, transform.QRCodes, id)
}

func (s *QRService) own(ctx context.Context, merchantID, id string) error {
	q, err := access.GetRecord(ctx, s.W, transform.QRCodes, id)
	if err != nil {
		return err
	}
	if q.MerchantID != merchantID {
		return ErrForbidden
	}
	return nil
}

// NewQRCode returns a fresh code for merchantID.
func NewQRCode(merchantID string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return merchantID + "-" + suffix
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	return lo.ToPtr(strings.TrimSpace(*s))
}
