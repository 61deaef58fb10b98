package service

import (
	"github.com/ledgerdesk/backend/internal/editor"
	"github.com/ledgerdesk/backend/internal/model"
)

// defaultPageHeight 默认页高：11 英寸（792 磅）
const defaultPageHeight = 792

// DefaultSectionsForType 单据类型的出厂段列表
// 支票为标准三联（支票联 + 两张存根联，合计 11 英寸），其余类型单段整页
func DefaultSectionsForType(documentType string) []editor.Section {
	switch documentType {
	case model.DocumentTypeCheque:
		return []editor.Section{
			{
				ID:           "cheque",
				Name:         "Cheque",
				HeightInches: 3.5,
				FieldPositions: map[string]editor.Geometry{
					"date":        {X: 430, Y: 24, Width: 120, Height: 24, FontSize: 10},
					"payee":       {X: 60, Y: 70, Width: 280, Height: 24, FontSize: 10},
					"amount":      {X: 460, Y: 70, Width: 110, Height: 24, FontSize: 10, Format: "currency"},
					"amountWords": {X: 40, Y: 110, Width: 420, Height: 24, FontSize: 10},
					"memo":        {X: 40, Y: 190, Width: 220, Height: 24, FontSize: 9},
					"signature":   {X: 370, Y: 185, Width: 200, Height: 40},
				},
			},
			{
				ID:           "stub-1",
				Name:         "Stub 1",
				HeightInches: 3.75,
				FieldPositions: map[string]editor.Geometry{
					"date":   {X: 40, Y: 20, Width: 120, Height: 24, FontSize: 9},
					"payee":  {X: 40, Y: 60, Width: 240, Height: 24, FontSize: 9},
					"amount": {X: 460, Y: 20, Width: 110, Height: 24, FontSize: 9, Format: "currency"},
					"memo":   {X: 40, Y: 100, Width: 240, Height: 24, FontSize: 9},
				},
			},
			{
				ID:           "stub-2",
				Name:         "Stub 2",
				HeightInches: 3.75,
				FieldPositions: map[string]editor.Geometry{
					"date":   {X: 40, Y: 20, Width: 120, Height: 24, FontSize: 9},
					"payee":  {X: 40, Y: 60, Width: 240, Height: 24, FontSize: 9},
					"amount": {X: 460, Y: 20, Width: 110, Height: 24, FontSize: 9, Format: "currency"},
				},
			},
		}
	default:
		return []editor.Section{
			{
				ID:             "body",
				Name:           "Body",
				HeightInches:   11,
				FieldPositions: map[string]editor.Geometry{},
			},
		}
	}
}

// defaultTemplateName 默认模板显示名
func defaultTemplateName(documentType string) string {
	switch documentType {
	case model.DocumentTypeCheque:
		return "Standard Cheque"
	case model.DocumentTypeInvoice:
		return "Standard Invoice"
	case model.DocumentTypeCreditNote:
		return "Standard Credit Note"
	case model.DocumentTypePaymentReceipt:
		return "Standard Payment Receipt"
	default:
		return "Standard Template"
	}
}
