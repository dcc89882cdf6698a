package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/scaffold"
	"github.com/siherrmann/scaffold/core/service"
	"github.com/siherrmann/scaffold/helper"
	"github.com/siherrmann/scaffold/model"
)

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	s, err := scaffold.NewScaffold(helper.TestDatabaseConfiguration(dbPort))
	if err != nil {
		log.Fatalf("Failed to create scaffold: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	s.Service.HelloWorld()

	// Save a few entities in one transaction
	var ids []int64
	err = s.InTransaction(ctx, func(svc *service.TestService) error {
		for _, name := range []string{"alpha", "beta", "gamma"} {
			entity, err := svc.Save(ctx, model.NewTestEntity().ChangeName(name))
			if err != nil {
				return err
			}
			ids = append(ids, entity.GetID())
		}
		return nil
	})
	if err != nil {
		log.Fatalf("Failed to save entities: %v", err)
	}

	for _, id := range ids {
		entity, err := s.Service.FindByID(ctx, id)
		if err != nil {
			log.Fatalf("Failed to find entity %d: %v", id, err)
		}
		fmt.Printf("Found entity %d: %s\n", entity.GetID(), entity.GetName())
	}

	// Rename and delete
	first, err := s.Service.FindByID(ctx, ids[0])
	if err != nil {
		log.Fatalf("Failed to find entity: %v", err)
	}
	if _, err := s.Service.Save(ctx, first.ChangeName("renamed")); err != nil {
		log.Fatalf("Failed to rename entity: %v", err)
	}

	if err := s.Service.DeleteByID(ctx, ids[1]); err != nil {
		log.Fatalf("Failed to delete entity: %v", err)
	}

	all, err := s.Service.FindAll(ctx)
	if err != nil {
		log.Fatalf("Failed to list entities: %v", err)
	}
	fmt.Printf("%d entities stored:\n", len(all))
	for _, entity := range all {
		fmt.Printf("  %d: %s\n", entity.GetID(), entity.GetName())
	}
}
