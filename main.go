package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kitchenhub/recipe-service/config"
	"github.com/kitchenhub/recipe-service/database"
	"github.com/kitchenhub/recipe-service/database/model"
	"github.com/kitchenhub/recipe-service/logger"
	"github.com/kitchenhub/recipe-service/web"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func initLogger() {
	level, err := logger.ParseLevel(config.GetLogLevel())
	if err != nil {
		log.Fatal(err)
	}
	logger.InitLogger(level)
}

func ensureAdmin(services *web.Services) {
	nickname, password := config.GetAdminCredentials()
	if nickname == "" || password == "" {
		return
	}
	created, err := services.Users.EnsureAdmin(nickname, password)
	if err != nil {
		logger.Warning("ensure admin failed: ", err)
		return
	}
	if created {
		logger.Infof("admin account %q created", nickname)
	}
}

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())
	initLogger()
	defer logger.CloseLogger()

	err := database.InitDB(config.GetDatabaseConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := database.CloseDB(); err != nil {
			logger.Warning("close db err: ", err)
		}
	}()

	services, err := web.NewServices(database.GetDB())
	if err != nil {
		log.Fatal(err)
	}
	ensureAdmin(services)

	server := web.NewServer(services)
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, os.Interrupt)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			logger.Info("received SIGHUP, restarting web server")
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer(services)
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func migrateDb() {
	err := database.InitDB(config.GetDatabaseConfig())
	if err != nil {
		fmt.Println("migrate failed:", err)
		return
	}
	defer database.CloseDB()
	fmt.Println("migrate success")
}

func createAdmin(nickname, password string) {
	if nickname == "" || password == "" {
		fmt.Println("nickname and password are required")
		return
	}
	err := database.InitDB(config.GetDatabaseConfig())
	if err != nil {
		fmt.Println(err)
		return
	}
	defer database.CloseDB()

	services, err := web.NewServices(database.GetDB())
	if err != nil {
		fmt.Println(err)
		return
	}
	user, err := services.Users.Register(nickname, password, model.RoleAdmin)
	if err != nil {
		fmt.Println("create admin failed:", err)
		return
	}
	fmt.Printf("admin %q created with id %d\n", user.Nickname, user.Id)
}

func main() {
	// A missing .env is fine; the environment may already be populated.
	_ = godotenv.Load()

	var rootCmd = &cobra.Command{
		Use: config.GetName(),
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the web server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Create an admin account",
		Run: func(cmd *cobra.Command, args []string) {
			nickname, _ := cmd.Flags().GetString("nickname")
			password, _ := cmd.Flags().GetString("password")
			createAdmin(nickname, password)
		},
	}

	adminCmd.Flags().String("nickname", "", "admin nickname")
	adminCmd.Flags().String("password", "", "admin password")

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(config.GetVersion())
		},
	}

	rootCmd.AddCommand(runCmd, migrateCmd, adminCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
