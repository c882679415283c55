package dto

type CityItem struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CityListResponse struct {
	Success bool       `json:"success"`
	Items   []CityItem `json:"items"`
}
