package dto

// NearestSearchRequest - busca do ponto de coleta mais próximo
type NearestSearchRequest struct {
	Lat          float64  `json:"lat" validate:"min=-90,max=90"`
	Lng          float64  `json:"lng" validate:"min=-180,max=180"`
	RadiusMeters float64  `json:"radius_meters" validate:"omitempty,min=0"`
	Tags         []string `json:"tags" validate:"omitempty,dive,min=1"`
}

// QuotaAdmitRequest - decisão de cota para uma identidade
type QuotaAdmitRequest struct {
	Identity string `json:"identity" validate:"required,min=1"`
	Limit    int64  `json:"limit" validate:"omitempty,min=1"`
}

// ScheduleRequest - consulta de agenda de coleta para uma coordenada
type ScheduleRequest struct {
	Lat      float64 `json:"lat" validate:"min=-90,max=90"`
	Lng      float64 `json:"lng" validate:"min=-180,max=180"`
	Identity string  `json:"identity" validate:"omitempty,min=1"`
}
