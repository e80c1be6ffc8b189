package main

import (
	"flag"

	"undangan.link/configs"
	"undangan.link/configs/configslog"
	"undangan.link/database"
)

func main() {
	configs.LoadEnv()
	configslog.InitLogger()
	defer configslog.Sync()

	migrateFlag := flag.Bool("migrate", false, "run the schema migrations")
	seedFlag := flag.Bool("seed", false, "run the idempotent seeders")
	flag.Parse()

	db := configs.ConnectDB()

	configslog.SLog.Info("Running database initialization...")
	database.Initialize(db, *migrateFlag, *seedFlag)
	configslog.SLog.Info("Database initialization done.")
}
