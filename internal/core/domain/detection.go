package domain

import "time"

// Detection is a plate-recognition event reported by an edge camera after
// the ANPR stage has run. The platform does not do plate recognition itself;
// processing starts from the recognized plate.
type Detection struct {
	CameraID        string
	PlateNumber     string
	ViolationType   string
	Location        string
	Timestamp       time.Time
	ConfidenceScore float64
	ImagePath       string
	VideoPath       string
}
