package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/library-allocations/library/core"
	"github.com/AntonStoeckl/library-allocations/library/features/command/addbook"
	"github.com/AntonStoeckl/library-allocations/library/features/command/allocatebookcopy"
	"github.com/AntonStoeckl/library-allocations/library/features/command/registermember"
	"github.com/AntonStoeckl/library-allocations/library/features/command/returnallocation"
)

const (
	flagSeedBooks       = "books"
	flagSeedMembers     = "members"
	flagSeedAllocations = "allocations"
	flagSeedRandom      = "random-seed"

	logMsgSeedCompleted  = "demo data seeded"
	logAttrBooks         = "books"
	logAttrMembers       = "members"
	logAttrAllocations   = "allocations"
	logAttrReturned      = "returned"
	logAttrSkipped       = "skipped"
	logAttrDurationMS    = "duration_ms"
	maxCopiesPerBook     = 4
	returnEveryNth       = 3
	maxAllocationDays    = 28
	allocationWindowDays = 60
)

var (
	seedTitles = []string{
		"Dune", "Emma", "Middlemarch", "Beloved", "Ulysses", "Persuasion", "Solaris", "Kindred",
		"Rebecca", "Dracula", "Frankenstein", "Neuromancer", "Hyperion", "The Hobbit", "Lolita", "Walden",
	}
	seedAuthors = []string{
		"Frank Herbert", "Jane Austen", "George Eliot", "Toni Morrison", "James Joyce", "Stanisław Lem",
		"Octavia E. Butler", "Daphne du Maurier", "Bram Stoker", "Mary Shelley", "William Gibson", "Dan Simmons",
	}
	seedFirstNames = []string{"Ada", "Grace", "Alan", "Edsger", "Barbara", "Donald", "Frances", "Ken", "Radia", "Niklaus"}
	seedLastNames  = []string{"Lovelace", "Hopper", "Turing", "Dijkstra", "Liskov", "Knuth", "Allen", "Thompson", "Perlman", "Wirth"}
)

type seedCounts struct {
	books       int
	members     int
	allocations int
	returned    int
	skipped     int
}

func newSeedCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the event store with demo books, members and allocations",
		Long: `seed runs the regular commands with random demo data.

Allocations that hit a book without free copies are skipped, every third allocation is returned.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()

			books, _ := flags.GetInt(flagSeedBooks)
			members, _ := flags.GetInt(flagSeedMembers)
			allocations, _ := flags.GetInt(flagSeedAllocations)
			randomSeed, _ := flags.GetUint64(flagSeedRandom)

			return a.seed(cmd.Context(), books, members, allocations, randomSeed)
		},
	}

	cmd.Flags().Int(flagSeedBooks, 20, "number of books to add")
	cmd.Flags().Int(flagSeedMembers, 50, "number of members to register")
	cmd.Flags().Int(flagSeedAllocations, 100, "number of allocations to attempt")
	cmd.Flags().Uint64(flagSeedRandom, 1, "seed of the random generator, the same seed picks the same titles, names and dates")

	return cmd
}

func (a *app) seed(ctx context.Context, numBooks int, numMembers int, numAllocations int, randomSeed uint64) error {
	if numBooks < 1 || numMembers < 1 || numAllocations < 0 {
		return fmt.Errorf("seed needs at least one book and one member")
	}

	startTime := time.Now()

	store, closeStore, err := openEventStore(ctx, a.cfg, a.logger)
	if err != nil {
		return err
	}
	defer closeStore()

	if err = store.CreateSchema(ctx); err != nil {
		return err
	}

	rnd := rand.New(rand.NewPCG(randomSeed, randomSeed))
	fakeClock := time.Now().UTC().AddDate(0, 0, -allocationWindowDays)
	today := core.DateOf(time.Now())
	counts := seedCounts{}

	addBook := addbook.NewCommandHandler(store)
	registerMember := registermember.NewCommandHandler(store)
	allocate := allocatebookcopy.NewCommandHandler(store)
	giveBack := returnallocation.NewCommandHandler(store)

	bookIDs := make([]uuid.UUID, 0, numBooks)
	for i := range numBooks {
		bookID := uuid.New()
		name := fmt.Sprintf("%s (vol. %d)", pick(rnd, seedTitles), i+1)

		command := addbook.BuildCommand(bookID, name, pick(rnd, seedAuthors), 1+rnd.IntN(maxCopiesPerBook), fakeClock)
		if _, err = addBook.Handle(ctx, command); err != nil {
			return err
		}

		bookIDs = append(bookIDs, bookID)
		counts.books++
		fakeClock = fakeClock.Add(time.Minute)
	}

	memberIDs := make([]uuid.UUID, 0, numMembers)
	for i := range numMembers {
		memberID := uuid.New()
		first, last := pick(rnd, seedFirstNames), pick(rnd, seedLastNames)
		email := fmt.Sprintf("%s.%s.%d@example.com", first, last, i+1)

		command := registermember.BuildCommand(memberID, first+" "+last, email, "", fakeClock)
		if _, err = registerMember.Handle(ctx, command); err != nil {
			return err
		}

		memberIDs = append(memberIDs, memberID)
		counts.members++
		fakeClock = fakeClock.Add(time.Minute)
	}

	for i := range numAllocations {
		allocationID := uuid.New()
		startDate := today.AddDays(-rnd.IntN(allocationWindowDays))
		endDate := startDate.AddDays(1 + rnd.IntN(maxAllocationDays))

		command := allocatebookcopy.BuildCommand(
			allocationID, pick(rnd, bookIDs), pick(rnd, memberIDs), startDate, endDate, fakeClock,
		)

		_, err = allocate.Handle(ctx, command)
		switch {
		case errors.Is(err, core.ErrCapacityExceeded):
			counts.skipped++
			continue
		case err != nil:
			return err
		}

		counts.allocations++
		fakeClock = fakeClock.Add(time.Minute)

		if i%returnEveryNth != 0 {
			continue
		}

		if _, err = giveBack.Handle(ctx, returnallocation.BuildCommand(allocationID, fakeClock)); err != nil {
			return err
		}

		counts.returned++
	}

	a.logger.Info(
		logMsgSeedCompleted,
		logAttrBooks, counts.books,
		logAttrMembers, counts.members,
		logAttrAllocations, counts.allocations,
		logAttrReturned, counts.returned,
		logAttrSkipped, counts.skipped,
		logAttrDurationMS, time.Since(startTime).Milliseconds(),
	)

	return nil
}

func pick[T any](rnd *rand.Rand, items []T) T {
	return items[rnd.IntN(len(items))]
}
