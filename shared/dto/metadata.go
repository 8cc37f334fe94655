package dto

import (
	"todoapp/shared/constant"
	"todoapp/shared/model"
	"todoapp/shared/timezone"
)

type Timestamps struct {
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

func (m *Timestamps) FromModel(model model.Timestamps) {
	m.CreatedAt = timezone.Format(model.CreatedAt, constant.DateFormat)
	m.UpdatedAt = timezone.Format(model.UpdatedAt, constant.DateFormat)
}
