package models

// ConnectionStatus is the human readable state of the backend probe.
type ConnectionStatus string

const (
	StatusInitial   ConnectionStatus = "Testing..."
	StatusTesting   ConnectionStatus = "Testing connection..."
	StatusConnected ConnectionStatus = "Connected"
	StatusFailed    ConnectionStatus = "Connection Failed"
	StatusSDKError  ConnectionStatus = "SDK Error"
)
