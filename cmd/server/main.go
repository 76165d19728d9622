package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/Mshel/sshtris/internal/config"
	"github.com/Mshel/sshtris/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
)

// connectionLimiter caps the number of concurrent sessions per client IP.
type connectionLimiter struct {
	maxPerIP  int
	ipMutex   sync.Mutex
	ipCounter map[string]int
}

func newConnectionLimiter(maxPerIP int) *connectionLimiter {
	return &connectionLimiter{
		maxPerIP:  maxPerIP,
		ipCounter: make(map[string]int),
	}
}

func getIP(s ssh.Session) string {
	if addr, ok := s.RemoteAddr().(*net.TCPAddr); ok {
		return addr.IP.String()
	}
	return s.RemoteAddr().String()
}

// acquire reserves a slot for ip and returns the count before reserving.
func (cl *connectionLimiter) acquire(ip string) (int, bool) {
	cl.ipMutex.Lock()
	defer cl.ipMutex.Unlock()
	current := cl.ipCounter[ip]
	if current >= cl.maxPerIP {
		return current, false
	}
	cl.ipCounter[ip]++
	return current, true
}

func (cl *connectionLimiter) release(ip string) int {
	cl.ipMutex.Lock()
	defer cl.ipMutex.Unlock()
	cl.ipCounter[ip]--
	if cl.ipCounter[ip] <= 0 {
		delete(cl.ipCounter, ip)
	}
	return cl.ipCounter[ip]
}

func (cl *connectionLimiter) Middleware(next ssh.Handler) ssh.Handler {
	return func(s ssh.Session) {
		ip := getIP(s)

		currentCount, ok := cl.acquire(ip)
		if !ok {
			log.Warn("Connection denied: IP limit exceeded", "ip", ip, "attempted_count", currentCount+1, "current_limit", cl.maxPerIP)
			errorMessage := fmt.Sprintf("Too many active connections from your IP (%d/%d). Please try again later.\r\n", currentCount+1, cl.maxPerIP)
			s.Write([]byte(errorMessage))
			s.Close()
			return
		}

		log.Info("Connection accepted", "ip", ip, "current_count", currentCount+1, "limit", cl.maxPerIP)
		defer func() {
			log.Info("Connection closed and counter decremented", "ip", ip, "count_after", cl.release(ip))
		}()
		next(s)
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}
	log.SetLevel(cfg.LogLevel)

	limiter := newConnectionLimiter(cfg.MaxConnectionsPerIP)
	sshServer, err := wish.NewServer(
		wish.WithAddress(cfg.Address()),
		wish.WithHostKeyPath(cfg.PrivateKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(newViewHandler(cfg)),
			logging.Middleware(),
			activeterm.Middleware(),
			limiter.Middleware,
		),
	)
	if err != nil {
		log.Fatal("Failed to create ssh server", "error", err)
	}

	serverDoneChannel := make(chan os.Signal, 1)
	signal.Notify(serverDoneChannel, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	log.Info("Starting SSH server", "address", cfg.Address())
	go func() {
		if err := sshServer.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Error("Could not start server", "error", err)
			serverDoneChannel <- nil
		}
	}()

	<-serverDoneChannel

	log.Info("Stopping SSH server")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := sshServer.Shutdown(ctx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		log.Error("Could not stop server", "error", err)
	}
}

// newViewHandler gives every SSH session its own controller and game.
func newViewHandler(cfg config.Config) bubbletea.Handler {
	return func(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sshSession.Pty()
		sessionLogger := log.With("session", uuid.NewString(), "user", sshSession.User())
		sessionLogger.Debug("Starting game session", "width", pty.Window.Width, "height", pty.Window.Height)

		controller := ui.NewControllerModel(ui.Settings{
			Game:            cfg.Game,
			AutopilotScript: cfg.AutopilotScript,
			Logger:          sessionLogger,
			Renderer:        bubbletea.MakeRenderer(sshSession),
			ScreenWidth:     pty.Window.Width,
			ScreenHeight:    pty.Window.Height,
		})

		return controller, []tea.ProgramOption{tea.WithAltScreen()}
	}
}
