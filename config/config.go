package config

import "os"

type Config struct {
	ServerPort        string
	TesseractDataPath string
	ModelsDir         string
	DataFile          string
	UploadDir         string
	MaxFileSize       int64
}

func LoadConfig() *Config {
	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	tesseractDataPath := os.Getenv("TESSDATA_PREFIX")
	if tesseractDataPath == "" {
		tesseractDataPath = "/usr/share/tesseract-ocr/5/tessdata/"
	}

	modelsDir := os.Getenv("MODELS_DIR")
	if modelsDir == "" {
		modelsDir = "models"
	}

	dataFile := os.Getenv("DATA_FILE")
	if dataFile == "" {
		dataFile = "data.json"
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}

	return &Config{
		ServerPort:        serverPort,
		TesseractDataPath: tesseractDataPath,
		ModelsDir:         modelsDir,
		DataFile:          dataFile,
		UploadDir:         uploadDir,
		MaxFileSize:       16 * 1024 * 1024, // 16 MB
	}
}
