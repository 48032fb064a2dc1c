// main.go (raíz del proyecto)
package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"
	"time"
)

var (
	// Canal para coordinar shutdown
	shutdownChan = make(chan os.Signal, 1)

	// PIDs de los procesos
	apiProcess    *os.Process
	workerProcess *os.Process
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("🚀 Iniciando Employee Microservice...")

	logSystemInfo()

	// Determinar modo de ejecución
	mode := determineRunMode()
	log.Printf("🎯 Modo de ejecución: %s", mode)

	setupSignalHandling()

	switch mode {
	case "api":
		runProcess("cmd/api/main.go", "API Server", &apiProcess)
	case "worker":
		runProcess("cmd/worker/main.go", "Worker", &workerProcess)
	case "all":
		runBothProcesses()
	default:
		log.Fatalf("❌ Modo de ejecución desconocido: %s", mode)
	}
}

// setupSignalHandling configura el manejo de señales
func setupSignalHandling() {
	if runtime.GOOS == "windows" {
		signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)
	} else {
		signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	}
}

// logSystemInfo muestra información del sistema
func logSystemInfo() {
	log.Printf("💻 Sistema: %s/%s", runtime.GOOS, runtime.GOARCH)
	log.Printf("🐹 Go version: %s", runtime.Version())
	log.Printf("📋 PID del proceso principal: %d", os.Getpid())
}

// determineRunMode determina el modo de ejecución basado en argumentos
func determineRunMode() string {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "api", "server":
			return "api"
		case "worker", "worker-only":
			return "worker"
		case "all", "both":
			return "all"
		default:
			log.Printf("⚠️  Argumento desconocido: %s, usando modo 'all'", os.Args[1])
		}
	}
	return "all" // Modo por defecto
}

// startProcess lanza un subproceso con go run y devuelve su *os.Process
func startProcess(path, name string) *os.Process {
	cmd := exec.Command("go", "run", path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		log.Fatalf("❌ Error iniciando %s: %v", name, err)
	}

	log.Printf("✅ %s iniciado con PID: %d", name, cmd.Process.Pid)
	return cmd.Process
}

// runProcess ejecuta un único subproceso y espera la señal de terminación
func runProcess(path, name string, procRef **os.Process) {
	*procRef = startProcess(path, name)

	<-shutdownChan
	log.Println("🛑 Señal de terminación recibida...")

	if err := stopProcessGracefully(*procRef, name); err != nil {
		log.Printf("⚠️  Error deteniendo %s: %v", name, err)
	}

	log.Println("👋 Employee Microservice terminado correctamente")
}

// runBothProcesses ejecuta tanto API como Worker
func runBothProcesses() {
	log.Println("🔄 Iniciando API Server y Worker...")

	apiProcess = startProcess("cmd/api/main.go", "API Server")

	// Dejar que el API levante antes de arrancar el worker
	time.Sleep(2 * time.Second)

	workerProcess = startProcess("cmd/worker/main.go", "Worker")

	log.Println("✅ Microservicio iniciado correctamente")
	log.Println("💡 Presiona Ctrl+C para terminar")

	<-shutdownChan
	log.Println("🛑 Señal de terminación recibida...")

	performGracefulShutdown()

	log.Println("👋 Employee Microservice terminado correctamente")
}

// stopProcessGracefully detiene un proceso de forma ordenada
func stopProcessGracefully(process *os.Process, name string) error {
	if process == nil {
		return nil
	}

	log.Printf("🛑 Deteniendo %s (PID: %d)...", name, process.Pid)

	if runtime.GOOS == "windows" {
		// Windows no soporta SIGTERM entre procesos
		taskkillCmd := exec.Command("taskkill", "/F", "/PID", fmt.Sprintf("%d", process.Pid))
		if err := taskkillCmd.Run(); err != nil {
			log.Printf("⚠️  Taskkill falló para %s: %v", name, err)
			if killErr := process.Kill(); killErr != nil {
				return killErr
			}
		}
	} else {
		if err := process.Signal(syscall.SIGTERM); err != nil {
			log.Printf("⚠️  Error enviando SIGTERM a %s: %v", name, err)
			if killErr := process.Kill(); killErr != nil {
				return killErr
			}
		}
	}

	// Esperar que el proceso termine con timeout
	done := make(chan error, 1)
	go func() {
		_, err := process.Wait()
		done <- err
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("⚠️  %s terminó con error: %v", name, err)
		} else {
			log.Printf("✅ %s detenido correctamente", name)
		}
		return err
	case <-time.After(15 * time.Second):
		log.Printf("⚠️  Timeout esperando que termine %s, forzando...", name)
		process.Signal(syscall.SIGKILL)
		return fmt.Errorf("proceso %s (PID: %d) no terminó a tiempo", name, process.Pid)
	}
}

// performGracefulShutdown coordina el shutdown de ambos procesos
func performGracefulShutdown() {
	log.Println("🔄 Iniciando shutdown graceful...")

	// Detener Worker primero (para que deje de procesar eventos)
	if err := stopProcessGracefully(workerProcess, "Worker"); err != nil {
		log.Printf("⚠️  Error deteniendo Worker: %v", err)
	}

	// Luego detener API Server
	if err := stopProcessGracefully(apiProcess, "API Server"); err != nil {
		log.Printf("⚠️  Error deteniendo API Server: %v", err)
	}

	log.Println("✅ Shutdown graceful completado")
}
