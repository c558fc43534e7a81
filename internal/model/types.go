package model

// Options controls how the classifier is loaded.
type Options struct {
	ModelPath   string
	LibraryPath string // libonnxruntime shared library, empty for the platform default
	InputName   string // discovered from the model when empty
	OutputName  string // discovered from the model when empty

	// ApplySoftmax normalises raw logits. Leave off for models whose last
	// layer is already a softmax.
	ApplySoftmax bool
}

// Metadata describes the loaded model's single input and output.
type Metadata struct {
	Path        string  `json:"path"`
	InputName   string  `json:"input_name"`
	OutputName  string  `json:"output_name"`
	InputShape  []int64 `json:"input_shape"`
	OutputShape []int64 `json:"output_shape"`
	Classes     int     `json:"classes"`
}
