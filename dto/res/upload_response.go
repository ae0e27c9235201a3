package res

type UploadResponse struct {
	FilePath string `json:"filePath"`
}
