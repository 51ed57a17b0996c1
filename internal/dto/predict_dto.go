package dto

// PredictResponse is the detection-bridge result: the recognized label, its
// confidence, and whether a matching vocabulary entry exists.
type PredictResponse struct {
	Text       string          `json:"text"`
	Confidence float64         `json:"confidence,omitempty"`
	FoundInDB  bool            `json:"found_in_db"`
	DBDetail   *KosaKataDetail `json:"db_detail,omitempty"`
}
