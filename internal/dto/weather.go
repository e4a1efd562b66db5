package dto

// WeatherQuery represents the coordinates for a weather lookup
type WeatherQuery struct {
	Latitude  float64 `form:"lat" binding:"required,gte=-90,lte=90"`
	Longitude float64 `form:"lon" binding:"required,gte=-180,lte=180"`
}

// WeatherResponse is the trimmed pass-through of the upstream forecast
type WeatherResponse struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Temperature float64 `json:"temperature"`
	WindSpeed   float64 `json:"wind_speed"`
	WeatherCode int     `json:"weather_code"`
	Time        string  `json:"time"`
}
