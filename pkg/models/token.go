package models

import "fmt"

// Token is a single recognized text fragment with its pixel bounding box
type Token struct {
	Text       string `json:"text"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
	W          int    `json:"w"`
	H          int    `json:"h"`
	Confidence int    `json:"conf"`
}

// RecognizerOutput is the raw word-level result of an OCR engine, laid out
// as parallel arrays indexed by token position
type RecognizerOutput struct {
	Text   []string `json:"text"`
	Conf   []int    `json:"conf"`
	Left   []int    `json:"left"`
	Top    []int    `json:"top"`
	Width  []int    `json:"width"`
	Height []int    `json:"height"`
}

// Len returns the number of recognized entries
func (o RecognizerOutput) Len() int {
	return len(o.Text)
}

// Validate checks that every parallel array has the same length
func (o RecognizerOutput) Validate() error {
	n := len(o.Text)
	fields := []struct {
		name string
		len  int
	}{
		{"conf", len(o.Conf)},
		{"left", len(o.Left)},
		{"top", len(o.Top)},
		{"width", len(o.Width)},
		{"height", len(o.Height)},
	}
	for _, f := range fields {
		if f.len != n {
			return NewError(KindValidation, "recognizer output",
				fmt.Errorf("%w: %s has %d entries, text has %d", ErrMalformedInput, f.name, f.len, n))
		}
	}
	return nil
}

// Append adds a single recognized entry to every parallel array
func (o *RecognizerOutput) Append(text string, conf, left, top, width, height int) {
	o.Text = append(o.Text, text)
	o.Conf = append(o.Conf, conf)
	o.Left = append(o.Left, left)
	o.Top = append(o.Top, top)
	o.Width = append(o.Width, width)
	o.Height = append(o.Height, height)
}
