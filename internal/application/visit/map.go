package visit

import (
	"github.com/sourcedupays/terrain-api/internal/application/dto"
	"github.com/sourcedupays/terrain-api/internal/domain/entity"
)

func toSummaryResponse(s *entity.VisitSummary) *dto.VisitSummaryResponse {
	if s == nil {
		return nil
	}
	return &dto.VisitSummaryResponse{
		ID:               s.ID,
		Date:             s.Date,
		Status:           s.Status,
		ClientID:         s.ClientID,
		ClientName:       s.ClientName,
		MerchandiserID:   s.MerchandiserID,
		MerchandiserName: s.MerchandiserName,
		Zone:             s.Zone,
		ValidatorID:      s.ValidatorID,
		ValidatedAt:      s.ValidatedAt,
	}
}

func toSummaryResponses(list []*entity.VisitSummary) []dto.VisitSummaryResponse {
	out := make([]dto.VisitSummaryResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSummaryResponse(s))
	}
	return out
}

func toDetailResponse(v *entity.Visit) *dto.VisitDetailResponse {
	out := &dto.VisitDetailResponse{
		ID:             v.ID,
		MerchandiserID: v.MerchandiserID,
		ClientID:       v.ClientID,
		Date:           v.Date,
		Status:         v.Status,
		Observations:   v.Observations,
		FIFORespected:  v.FIFORespected,
		PlanoRespected: v.PlanoRespected,
		ValidatorID:    v.ValidatorID,
		ValidatedAt:    v.ValidatedAt,
		StockReadings:  make([]dto.StockReadingResponse, 0, len(v.StockReadings)),
		ProductDetails: make([]dto.ProductDetailResponse, 0, len(v.ProductDetails)),
		CompetitorObs:  make([]dto.CompetitorObsResponse, 0, len(v.CompetitorObs)),
	}
	for _, s := range v.StockReadings {
		out.StockReadings = append(out.StockReadings, dto.StockReadingResponse{
			ID:           s.ID,
			ProductID:    s.ProductID,
			Quantity:     s.Quantity,
			OutOfStock:   s.OutOfStock,
			ShortageKind: s.ShortageKind,
		})
	}
	for _, d := range v.ProductDetails {
		out.ProductDetails = append(out.ProductDetails, dto.ProductDetailResponse{
			ID:          d.ID,
			ProductID:   d.ProductID,
			DetailType:  d.DetailType,
			Quantity:    d.Quantity,
			Observation: d.Observation,
		})
	}
	for _, c := range v.CompetitorObs {
		out.CompetitorObs = append(out.CompetitorObs, dto.CompetitorObsResponse{
			ID:           c.ID,
			CompetitorID: c.CompetitorID,
			Brand:        c.Brand,
			PackCount:    c.PackCount,
			Activity:     c.Activity,
			Mechanism:    c.Mechanism,
		})
	}
	return out
}
