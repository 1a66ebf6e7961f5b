package domain

// FileUpload is a file received in a multipart request, fully buffered.
type FileUpload struct {
	Filename string
	Data     []byte
}

func (f *FileUpload) Size() int64 {
	if f == nil {
		return 0
	}
	return int64(len(f.Data))
}
