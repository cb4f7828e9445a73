package http

import (
	"github.com/jhoicas/ascari-panel/internal/application/dto"
	"github.com/jhoicas/ascari-panel/internal/application/ports"
	"github.com/jhoicas/ascari-panel/internal/application/quote"
	"github.com/jhoicas/ascari-panel/internal/domain/entity"
)

func toWorkspaceResponse(v quote.View, sync *entity.SyncStatus) dto.WorkspaceResponse {
	out := dto.WorkspaceResponse{
		State:         string(v.State),
		CatalogLoaded: v.CatalogLoaded,
		CatalogError:  v.CatalogError,
		SearchError:   v.SearchError,
		ActiveFilter:  v.ActiveFilter,
		Query:         v.Query,
		RemoteSearch:  v.RemoteSearch,
		Tree:          make([]dto.CategoryRowResponse, 0, len(v.Tree)),
		Products:      toProductResponses(v.Products),
		Cart:          toCartLineResponses(v.Cart),
		CartTotal:     v.CartTotal,
	}
	if !v.LastSync.IsZero() {
		t := v.LastSync
		out.LastSync = &t
	}
	for _, r := range v.Tree {
		out.Tree = append(out.Tree, dto.CategoryRowResponse{
			ID:          r.ID,
			Name:        r.Name,
			Depth:       r.Depth,
			HasChildren: r.HasChildren,
			Expanded:    r.Expanded,
			Selected:    r.Selected,
		})
	}
	if v.Quotation != nil {
		q := toQuotationResponse(*v.Quotation, sync)
		out.Quotation = &q
	}
	return out
}

func toProductResponses(products []entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toProductResponse(p entity.Product) dto.ProductResponse {
	r := dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Code:         p.Code,
		UnitPrice:    p.UnitPrice,
		StockQty:     p.StockQty,
		CategoryID:   p.CategoryID,
		CategoryPath: p.CategoryPath,
		Thumbnail:    p.Thumbnail,
	}
	if r.CategoryPath == nil {
		r.CategoryPath = []string{}
	}
	if d := p.Dimensions; d != nil {
		r.Dimensions = &dto.DimensionsResponse{Width: d.Width, Depth: d.Depth, Height: d.Height}
	}
	return r
}

func toCartLineResponses(lines []entity.CartLine) []dto.CartLineResponse {
	out := make([]dto.CartLineResponse, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.CartLineResponse{
			ProductID: l.Product.ID,
			Name:      l.Product.Name,
			Code:      l.Product.Code,
			Quantity:  l.Quantity,
			UnitPrice: l.Product.UnitPrice,
			LineTotal: l.LineTotal(),
		})
	}
	return out
}

func toQuotationResponse(q entity.Quotation, sync *entity.SyncStatus) dto.QuotationResponse {
	out := dto.QuotationResponse{
		Code:            q.Code,
		CustomerName:    q.CustomerName,
		CustomerPhone:   q.CustomerPhone,
		IssuedAt:        q.IssuedAt,
		PricingMode:     string(q.PricingMode),
		Lines:           toCartLineResponses(q.Lines),
		Subtotal:        q.Subtotal,
		ListTotal:       q.ListTotal,
		DiscountApplied: q.DiscountApplied,
		DiscountedTotal: q.DiscountedTotal,
		TaxRate:         q.TaxRate,
		TaxAmount:       q.TaxAmount,
		GrandTotal:      q.GrandTotal,
		VerificationURL: q.VerificationURL,
	}
	if sync != nil {
		out.Sync = &dto.SyncStatusResponse{
			State:     string(sync.State),
			RemoteID:  sync.RemoteID,
			UpdatedAt: sync.UpdatedAt,
		}
	}
	return out
}

func toSearchResponse(kind ports.EntityKind, query string, res ports.SearchResult) dto.SearchResponse {
	out := dto.SearchResponse{Kind: string(kind), Query: query}
	if kind == ports.KindProduct {
		out.Products = toProductResponses(res.Products)
		return out
	}
	out.Records = make([]dto.RecordResponse, 0, len(res.Records))
	for _, r := range res.Records {
		rec := dto.RecordResponse{
			ID:        r.ID,
			Title:     r.Title,
			Partner:   r.Partner,
			Email:     r.Email,
			Phone:     r.Phone,
			Address:   r.Address,
			Amount:    r.Amount,
			State:     r.State,
			Reference: r.Reference,
		}
		if !r.Date.IsZero() {
			d := r.Date
			rec.Date = &d
		}
		out.Records = append(out.Records, rec)
	}
	return out
}
