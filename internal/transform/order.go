package transform

import (
	"maps"

	"github.com/rlaig/ezorder/internal/model"
	"github.com/rlaig/ezorder/internal/view"
)

// OrderToFrontend derives timeAgo from env.Now, so it is deterministic for a fixed Env.
func OrderToFrontend(o model.Order, env Env) view.Order {
	next := NextStatus(o.Status)
	return view.Order{
		Entity:              entity(o.Base),
		MerchantID:          o.MerchantID,
		CustomerID:          clone(o.CustomerID),
		QRCodeID:            clone(o.QrCodeID),
		CustomerName:        clone(o.CustomerName),
		CustomerPhone:       clone(o.CustomerPhone),
		Status:              o.Status,
		TotalAmount:         o.TotalAmount,
		TaxAmount:           clone(o.TaxAmount),
		SpecialInstructions: clone(o.SpecialInstructions),
		EstimatedReadyTime:  clone(o.EstimatedReadyTime),
		CompletedAt:         clone(o.CompletedAt),
		FormattedTotal:      FormatCurrency(o.TotalAmount),
		StatusColor:         OrderStatusColor(o.Status),
		StatusLabel:         Label(string(o.Status)),
		OrderNumber:         OrderNumber(o.ID),
		TimeAgo:             FormatTimeAgo(o.Created, env.now()),
		CanAdvanceStatus:    next.IsPresent(),
		NextStatus:          next.ToPointer(),
	}
}

func OrderToDatabase(in view.OrderInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "merchant_id", in.MerchantID)
	model.Put(p, "customer_id", in.CustomerID)
	model.Put(p, "qr_code_id", in.QRCodeID)
	model.Put(p, "customer_name", in.CustomerName)
	model.Put(p, "customer_phone", in.CustomerPhone)
	model.Put(p, "status", in.Status)
	model.Put(p, "total_amount", in.TotalAmount)
	model.Put(p, "tax_amount", in.TaxAmount)
	model.Put(p, "special_instructions", in.SpecialInstructions)
	model.Put(p, "estimated_ready_time", in.EstimatedReadyTime)
	model.Put(p, "completed_at", in.CompletedAt)
	return p
}

func OrderItemToFrontend(it model.OrderItem, _ Env) view.OrderItem {
	return view.OrderItem{
		Entity:              entity(it.Base),
		OrderID:             it.OrderID,
		MenuItemID:          it.MenuItemID,
		ItemName:            it.ItemName,
		Quantity:            it.Quantity,
		UnitPrice:           it.UnitPrice,
		TotalPrice:          it.TotalPrice,
		SpecialInstructions: clone(it.SpecialInstructions),
		FormattedUnitPrice:  FormatCurrency(it.UnitPrice),
		FormattedTotalPrice: FormatCurrency(it.TotalPrice),
	}
}

func OrderItemToDatabase(in view.OrderItemInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "order_id", in.OrderID)
	model.Put(p, "menu_item_id", in.MenuItemID)
	model.Put(p, "item_name", in.ItemName)
	model.Put(p, "quantity", in.Quantity)
	model.Put(p, "unit_price", in.UnitPrice)
	model.Put(p, "total_price", in.TotalPrice)
	model.Put(p, "special_instructions", in.SpecialInstructions)
	return p
}

func OrderModifierToFrontend(m model.OrderModifier, _ Env) view.OrderModifier {
	return view.OrderModifier{
		Entity:                   entity(m.Base),
		OrderItemID:              m.OrderItemID,
		ModifierID:               clone(m.ModifierID),
		ModifierName:             m.ModifierName,
		OptionName:               m.OptionName,
		OptionValue:              m.OptionValue,
		PriceAdjustment:          m.PriceAdjustment,
		FormattedPriceAdjustment: FormatCurrency(m.PriceAdjustment),
	}
}

func OrderModifierToDatabase(in view.OrderModifierInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "order_item_id", in.OrderItemID)
	model.Put(p, "modifier_id", in.ModifierID)
	model.Put(p, "modifier_name", in.ModifierName)
	model.Put(p, "option_name", in.OptionName)
	model.Put(p, "option_value", in.OptionValue)
	model.Put(p, "price_adjustment", in.PriceAdjustment)
	return p
}

func PaymentToFrontend(pm model.Payment, _ Env) view.Payment {
	return view.Payment{
		Entity:          entity(pm.Base),
		OrderID:         pm.OrderID,
		Method:          pm.Method,
		Status:          pm.Status,
		Amount:          pm.Amount,
		TransactionID:   clone(pm.TransactionID),
		Metadata:        maps.Clone(pm.Metadata),
		ProcessedAt:     clone(pm.ProcessedAt),
		FormattedAmount: FormatCurrency(pm.Amount),
		StatusColor:     PaymentStatusColor(pm.Status),
		MethodLabel:     MethodLabel(pm.Method),
	}
}

func PaymentToDatabase(in view.PaymentInput) model.Patch {
	p := model.Patch{}
	model.Put(p, "order_id", in.OrderID)
	model.Put(p, "method", in.Method)
	model.Put(p, "status", in.Status)
	model.Put(p, "amount", in.Amount)
	model.Put(p, "transaction_id", in.TransactionID)
	model.PutMap(p, "metadata", in.Metadata)
	model.Put(p, "processed_at", in.ProcessedAt)
	return p
}
