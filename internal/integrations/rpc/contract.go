package rpc

// Caller вызывает хранимую процедуру и возвращает тело ответа как есть.
// Реализуется *supabase.Client.
type Caller interface {
	Rpc(name, count string, rpcBody interface{}) string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
