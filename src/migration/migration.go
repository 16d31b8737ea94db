package migration

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	lorem "github.com/HandmadeNetwork/golorem"
	"github.com/carafeforum/carafe/src/carafedata"
	"github.com/carafeforum/carafe/src/db"
	"github.com/carafeforum/carafe/src/migration/migrations"
	"github.com/carafeforum/carafe/src/migration/types"
	"github.com/carafeforum/carafe/src/perms"
	"github.com/carafeforum/carafe/src/utils"
	"github.com/carafeforum/carafe/src/website"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/cobra"
)

var listMigrations bool

func init() {
	migrateCommand := &cobra.Command{
		Use:   "migrate [target migration id]",
		Short: "Run database migrations",
		Run: func(cmd *cobra.Command, args []string) {
			if listMigrations {
				ListMigrations()
				return
			}

			targetVersion := time.Time{}
			if len(args) > 0 {
				var err error
				targetVersion, err = time.Parse(time.RFC3339, args[0])
				if err != nil {
					fmt.Printf("ERROR: bad version string: %v", err)
					os.Exit(1)
				}
			}
			Migrate(types.MigrationVersion(targetVersion))
		},
	}
	migrateCommand.Flags().BoolVar(&listMigrations, "list", false, "List available migrations")

	seedCommand := &cobra.Command{
		Use:   "seed",
		Short: "Migrate to the latest version and create sample data for development",
		Run: func(cmd *cobra.Command, args []string) {
			Migrate(types.MigrationVersion{})
			SampleSeed()
		},
	}

	website.WebsiteCommand.AddCommand(migrateCommand)
	website.WebsiteCommand.AddCommand(seedCommand)
}

func getSortedMigrationVersions() []types.MigrationVersion {
	var allVersions []types.MigrationVersion
	for migrationTime := range migrations.All {
		allVersions = append(allVersions, migrationTime)
	}
	sort.Slice(allVersions, func(i, j int) bool {
		return allVersions[i].Before(allVersions[j])
	})

	return allVersions
}

func getCurrentVersion(ctx context.Context, conn *pgx.Conn) (types.MigrationVersion, error) {
	var currentVersion time.Time
	row := conn.QueryRow(ctx, `SELECT version FROM migration`)
	err := row.Scan(&currentVersion)
	if err != nil {
		return types.MigrationVersion{}, err
	}

	return types.MigrationVersion(currentVersion.UTC()), nil
}

func tryGetCurrentVersion(ctx context.Context) types.MigrationVersion {
	defer func() {
		recover()
	}()

	conn := db.NewConn()
	defer conn.Close(ctx)

	currentVersion, _ := getCurrentVersion(ctx, conn)

	return currentVersion
}

func ListMigrations() {
	ctx := context.Background()

	currentVersion := tryGetCurrentVersion(ctx)
	for _, version := range getSortedMigrationVersions() {
		migration := migrations.All[version]
		indicator := "  "
		if version.Equal(currentVersion) {
			indicator = "✔ "
		}
		fmt.Printf("%s%v (%s: %s)\n", indicator, version, migration.Name(), migration.Description())
	}
}

func Migrate(targetVersion types.MigrationVersion) {
	ctx := context.Background()

	conn := db.NewConn()
	defer conn.Close(ctx)

	// create migration table
	_, err := conn.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migration (
			version		TIMESTAMP WITH TIME ZONE
		)
	`)
	if err != nil {
		panic(fmt.Errorf("failed to create migration table: %w", err))
	}

	// ensure there is a row
	row := conn.QueryRow(ctx, `SELECT COUNT(*) FROM migration`)
	var numRows int
	utils.Must(row.Scan(&numRows))
	if numRows < 1 {
		_, err := conn.Exec(ctx, `INSERT INTO migration (version) VALUES ($1)`, time.Time{})
		if err != nil {
			panic(fmt.Errorf("failed to insert initial migration row: %w", err))
		}
	}

	// run migrations
	currentVersion, err := getCurrentVersion(ctx, conn)
	if err != nil {
		panic(fmt.Errorf("failed to get current version: %w", err))
	}
	if currentVersion.IsZero() {
		fmt.Println("This is the first time you have run database migrations.")
	} else {
		fmt.Printf("Current version: %s\n", currentVersion.String())
	}

	allVersions := getSortedMigrationVersions()
	if targetVersion.IsZero() {
		targetVersion = allVersions[len(allVersions)-1]
	}

	currentIndex := -1
	targetIndex := -1
	for i, version := range allVersions {
		if currentVersion.Equal(version) {
			currentIndex = i
		}
		if targetVersion.Equal(version) {
			targetIndex = i
		}
	}

	if targetIndex < 0 {
		fmt.Printf("ERROR: Could not find migration with version %v\n", targetVersion)
		return
	}

	if currentIndex < targetIndex {
		// roll forward
		for i := currentIndex + 1; i <= targetIndex; i++ {
			version := allVersions[i]
			migration := migrations.All[version]
			fmt.Printf("Applying migration %v (%v)\n", version, migration.Name())

			tx, err := conn.Begin(ctx)
			if err != nil {
				panic(fmt.Errorf("failed to start transaction: %w", err))
			}
			defer tx.Rollback(ctx)

			err = migration.Up(ctx, tx)
			if err != nil {
				fmt.Printf("MIGRATION FAILED for migration %v.\n", version)
				fmt.Printf("Error: %v\n", err)
				return
			}

			_, err = tx.Exec(ctx, `UPDATE migration SET version = $1`, version)
			if err != nil {
				panic(fmt.Errorf("failed to update version in migrations table: %w", err))
			}

			err = tx.Commit(ctx)
			if err != nil {
				panic(fmt.Errorf("failed to commit transaction: %w", err))
			}
		}
	} else if currentIndex > targetIndex {
		// roll back
		for i := currentIndex; i > targetIndex; i-- {
			version := allVersions[i]
			previousVersion := types.MigrationVersion{}
			if i > 0 {
				previousVersion = allVersions[i-1]
			}

			tx, err := conn.Begin(ctx)
			if err != nil {
				panic(fmt.Errorf("failed to start transaction: %w", err))
			}
			defer tx.Rollback(ctx)

			fmt.Printf("Rolling back migration %v\n", version)
			migration := migrations.All[version]
			err = migration.Down(ctx, tx)
			if err != nil {
				fmt.Printf("MIGRATION FAILED for migration %v.\n", version)
				fmt.Printf("Error: %v\n", err)
				return
			}

			_, err = tx.Exec(ctx, `UPDATE migration SET version = $1`, previousVersion)
			if err != nil {
				panic(fmt.Errorf("failed to update version in migrations table: %w", err))
			}

			err = tx.Commit(ctx)
			if err != nil {
				panic(fmt.Errorf("failed to commit transaction: %w", err))
			}
		}
	} else {
		fmt.Println("Already migrated; nothing to do.")
	}
}

// Creates enough data to click around in development: an admin, a regular
// user, one board, and a handful of posts and comments.
func SampleSeed() {
	ctx := context.Background()

	conn := db.NewConnPool()
	defer conn.Close()

	admin := utils.Must1(carafedata.CreateUser(ctx, conn, "admin", "admin@example.com", "12345678"))
	utils.Must1(conn.Exec(ctx, `UPDATE board_user SET is_admin = TRUE WHERE id = $1`, admin.ID))

	user := utils.Must1(carafedata.CreateUser(ctx, conn, "regular_user", "user@example.com", "12345678"))

	adminActor := perms.Authenticated(admin.ID, true)
	userActor := perms.Authenticated(user.ID, false)

	board := utils.Must1(carafedata.CreateBoard(ctx, conn, adminActor, "general", "General discussion"))

	welcome := utils.Must1(carafedata.CreatePost(ctx, conn, userActor, board.ID, "Welcome to the board", "Say hello! Markdown and a few legacy BBCode tags work here."))
	utils.Must1(carafedata.CreateComment(ctx, conn, adminActor, welcome.ID, "Hello from the admin."))

	// Filler so listings have something to sort and page through.
	for i := 0; i < 8; i++ {
		post := utils.Must1(carafedata.CreatePost(ctx, conn, userActor, board.ID, lorem.Sentence(3, 5), lorem.Paragraph(1, 3)))
		for j := 0; j < i%3; j++ {
			utils.Must1(carafedata.CreateComment(ctx, conn, adminActor, post.ID, lorem.Sentence(4, 12)))
		}
	}

	fmt.Println("Seeded sample data. Log in as admin / 12345678 or regular_user / 12345678.")
}
