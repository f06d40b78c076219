package directory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ResolverSuite struct {
	suite.Suite
	store    *MemoryStore
	resolver *Resolver
}

func TestResolverSuite(t *testing.T) {
	suite.Run(t, new(ResolverSuite))
}

func (s *ResolverSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.resolver = NewResolver(s.store)
}

func (s *ResolverSuite) TestResolveAdmin() {
	s.Run("routes a traveler to their group admin", func() {
		s.store.SeedUser(User{ID: "u-1", Name: "Ada", UserType: UserTypeTraveler, TravelID: "t-1"})
		s.store.SeedUser(User{ID: "a-1", Name: "Grace", UserType: UserTypeTravelAdmin, TravelID: "t-1", DeviceToken: "tok-1"})

		res, err := s.resolver.ResolveAdmin(context.Background(), "u-1")
		s.Require().NoError(err)
		s.Equal("Ada", res.UserName)
		s.Equal("t-1", string(res.TravelID))
		s.Equal("a-1", string(res.Admin.ID))
		s.Equal("tok-1", res.Admin.DeviceToken)
	})

	s.Run("falls back to Unknown User when the name is blank", func() {
		s.store.SeedUser(User{ID: "u-2", UserType: UserTypeTraveler, TravelID: "t-1"})
		s.store.SeedUser(User{ID: "a-1", Name: "Grace", UserType: UserTypeTravelAdmin, TravelID: "t-1"})

		res, err := s.resolver.ResolveAdmin(context.Background(), "u-2")
		s.Require().NoError(err)
		s.Equal("Unknown User", res.UserName)
	})

	s.Run("unknown user", func() {
		_, err := s.resolver.ResolveAdmin(context.Background(), "missing")
		s.Require().ErrorIs(err, ErrUserNotFound)
	})

	s.Run("user without a travel group", func() {
		s.store.SeedUser(User{ID: "u-3", Name: "Lin", UserType: UserTypeTraveler})

		_, err := s.resolver.ResolveAdmin(context.Background(), "u-3")
		s.Require().ErrorIs(err, ErrNoGroupAssigned)
	})

	s.Run("group without an admin", func() {
		s.store.SeedUser(User{ID: "u-4", Name: "Sam", UserType: UserTypeTraveler, TravelID: "t-orphan"})

		_, err := s.resolver.ResolveAdmin(context.Background(), "u-4")
		s.Require().ErrorIs(err, ErrNoAdminForGroup)
	})

	s.Run("a traveler in the group is not mistaken for its admin", func() {
		s.store.SeedUser(User{ID: "u-5", Name: "Kim", UserType: UserTypeTraveler, TravelID: "t-2"})
		s.store.SeedUser(User{ID: "u-6", Name: "Joy", UserType: UserTypeTraveler, TravelID: "t-2"})

		_, err := s.resolver.ResolveAdmin(context.Background(), "u-5")
		s.Require().ErrorIs(err, ErrNoAdminForGroup)
	})
}
