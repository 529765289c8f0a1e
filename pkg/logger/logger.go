// Package logger envuelve zerolog con la configuración del agente de reposición.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config opciones del logger.
type Config struct {
	Env     string    // "development" imprime en consola; cualquier otro valor, JSON por línea
	Level   string    // nivel de zerolog (trace..error); vacío o desconocido -> info
	Service string    // si no está vacío, se agrega como campo "service" a cada línea
	Out     io.Writer // os.Stdout si es nil
}

// Logger logger estructurado compartido por el motor, los handlers y los comandos.
type Logger struct {
	zl zerolog.Logger
}

// New construye el logger y lo instala también como logger global de zerolog.
func New(cfg Config) *Logger {
	out := cfg.Out
	if out == nil {
		out = os.Stdout
	}
	if cfg.Env == "development" {
		out = zerolog.ConsoleWriter{Out: out}
	}

	zc := zerolog.New(out).Level(parseLevel(cfg.Level)).With().Timestamp()
	if cfg.Service != "" {
		zc = zc.Str("service", cfg.Service)
	}
	zl := zc.Logger()
	log.Logger = zl
	return &Logger{zl: zl}
}

// Nop descarta todo.
func Nop() *Logger {
	return &Logger{zl: zerolog.Nop()}
}

func parseLevel(s string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

func (l *Logger) Trace() *zerolog.Event { return l.zl.Trace() }
func (l *Logger) Debug() *zerolog.Event { return l.zl.Debug() }
func (l *Logger) Info() *zerolog.Event  { return l.zl.Info() }
func (l *Logger) Warn() *zerolog.Event  { return l.zl.Warn() }
func (l *Logger) Error() *zerolog.Event { return l.zl.Error() }
func (l *Logger) Fatal() *zerolog.Event { return l.zl.Fatal() }

// ForRun sublogger de una corrida sobre todos los productos; cada línea lleva run_id.
func (l *Logger) ForRun(runID string) zerolog.Logger {
	return l.zl.With().Str("run_id", runID).Logger()
}

// Zerolog logger interno, para pasarlo a funciones que reciben zerolog directamente.
func (l *Logger) Zerolog() zerolog.Logger {
	return l.zl
}
