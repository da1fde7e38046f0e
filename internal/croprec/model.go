package croprec

// Features are the soil and climate readings the model predicts from.
// Pointers distinguish a missing reading from a zero one.
type Features struct {
	Nitrogen    *float64 `json:"nitrogen" binding:"required"`
	Phosphorus  *float64 `json:"phosphorus" binding:"required"`
	Potassium   *float64 `json:"potassium" binding:"required"`
	Temperature *float64 `json:"temperature" binding:"required"`
	Humidity    *float64 `json:"humidity" binding:"required"`
	PH          *float64 `json:"ph" binding:"required"`
	Rainfall    *float64 `json:"rainfall" binding:"required"`
}

// Missing lists the JSON names of absent readings, in request order.
func (f Features) Missing() []string {
	var out []string
	for _, v := range []struct {
		name string
		val  *float64
	}{
		{"nitrogen", f.Nitrogen},
		{"phosphorus", f.Phosphorus},
		{"potassium", f.Potassium},
		{"temperature", f.Temperature},
		{"humidity", f.Humidity},
		{"ph", f.PH},
		{"rainfall", f.Rainfall},
	} {
		if v.val == nil {
			out = append(out, v.name)
		}
	}
	return out
}

type recommendation struct {
	Recommendation string `json:"recommendation"`
}

type upstreamResponse struct {
	Success bool            `json:"success"`
	Data    *recommendation `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
}
