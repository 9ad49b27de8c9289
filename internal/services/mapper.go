package services

import (
	"parts-order-system/internal/dto"
	"parts-order-system/internal/entities"
	"parts-order-system/internal/workflow"
	"parts-order-system/pkg/utils"
)

func toOrderDTO(order *entities.Order, creator dto.ShortUserDTO) dto.OrderDTO {
	return dto.OrderDTO{
		ID:                    order.ID,
		OrderNumber:           order.OrderNumber,
		Title:                 order.Title,
		Description:           utils.SafeDeref(order.Description),
		EquipmentName:         utils.SafeDeref(order.EquipmentName),
		EquipmentModel:        utils.SafeDeref(order.EquipmentModel),
		EquipmentSerial:       utils.SafeDeref(order.EquipmentSerial),
		EquipmentLocation:     utils.SafeDeref(order.EquipmentLocation),
		UrgencyLevel:          order.UrgencyLevel,
		RequestedDeliveryDate: utils.FormatDatePtr(order.RequestedDeliveryDate),
		Notes:                 utils.SafeDeref(order.Notes),
		TotalEstimatedCost:    order.TotalEstimatedCost,
		Currency:              order.Currency,
		Status:                string(workflow.Normalize(workflow.Status(order.Status))),
		Creator:               creator,
		CreatedAt:             utils.FormatTime(order.CreatedAt),
		UpdatedAt:             utils.FormatTime(order.UpdatedAt),
	}
}

func toOrderItemDTO(item *entities.OrderItem) dto.OrderItemDTO {
	out := dto.OrderItemDTO{
		ID:           item.ID,
		OrderID:      item.OrderID,
		PartNumber:   utils.SafeDeref(item.PartNumber),
		PartName:     item.PartName,
		Manufacturer: utils.SafeDeref(item.Manufacturer),
		Quantity:     item.Quantity,
		Status:       item.Status,
		Notes:        utils.SafeDeref(item.Notes),
	}
	if item.UnitPrice != nil {
		out.UnitPrice = *item.UnitPrice
		out.TotalPrice = *item.UnitPrice * float64(item.Quantity)
	}
	return out
}

func toReviewerAssignmentDTO(a *entities.OrderReviewer, reviewer dto.ShortUserDTO) dto.ReviewerAssignmentDTO {
	return dto.ReviewerAssignmentDTO{
		ID:           a.ID,
		OrderID:      a.OrderID,
		Reviewer:     reviewer,
		ReviewerType: a.ReviewerType,
		Status:       a.Status,
		Comments:     utils.SafeDeref(a.Comments),
		AssignedAt:   utils.FormatTime(a.AssignedAt),
		CompletedAt:  utils.FormatTimePtr(a.CompletedAt),
	}
}

func toWorkflowEntryDTO(e *entities.WorkflowEntry, actor dto.ShortUserDTO) dto.WorkflowEntryDTO {
	return dto.WorkflowEntryDTO{
		ID:           e.ID,
		OrderID:      e.OrderID,
		FromStatus:   utils.SafeDeref(e.FromStatus),
		ToStatus:     utils.SafeDeref(e.ToStatus),
		Actor:        actor,
		ChangeReason: utils.SafeDeref(e.ChangeReason),
		Comments:     utils.SafeDeref(e.Comments),
		IsNote:       e.FromStatus == nil && e.ToStatus == nil,
		CreatedAt:    utils.FormatTime(e.CreatedAt),
	}
}

func toShortUserDTO(u *entities.User) dto.ShortUserDTO {
	return dto.ShortUserDTO{
		ID:             u.ID,
		Fio:            u.Fio,
		Phone:          utils.SafeDeref(u.Phone),
		DepartmentName: utils.SafeDeref(u.DepartmentName),
	}
}
