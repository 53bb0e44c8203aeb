// Package tables declares the route tables of each application variant and
// selects the active one by role.
package tables

import (
	"errors"
	"fmt"

	"github.com/JaimeStill/unidelivery/pkg/navigation"
)

// ErrUnknownRole is returned when a role has no route table.
var ErrUnknownRole = errors.New("unknown role")

// Role identifies an application variant.
type Role string

// Role constants.
const (
	RoleUser     Role = "user"
	RoleDemo     Role = "demo"
	RoleOperator Role = "operator"
)

// Roles returns every role with a route table.
func Roles() []Role {
	return []Role{RoleUser, RoleDemo, RoleOperator}
}

// Validate checks if the role has a route table.
func (r Role) Validate() error {
	switch r {
	case RoleUser, RoleDemo, RoleOperator:
		return nil
	default:
		return fmt.Errorf("%w: %q (must be user, demo, or operator)", ErrUnknownRole, string(r))
	}
}

// Route names.
const (
	RouteHome     = "home"
	RouteContacts = "contacts"
	RoutePageOne  = "page_one"
	RoutePageTwo  = "page_two"
	RouteCuteCat  = "cutecat"
	RouteUsers    = "users"
)

// ParamCampain is the campaign identifier bound by the operator users route.
const ParamCampain = "campain"

// Views holds the views the route tables dispatch to.
type Views struct {
	Home            navigation.View
	Contacts        navigation.View
	PageOne         navigation.View
	PageTwo         navigation.View
	CuteCat         navigation.View
	HomeOperator    navigation.View
	MyUsersOperator navigation.View
}

// New builds the route table for role. The views referenced by the table
// must be set in v.
func New(role Role, v Views) (*navigation.Table, error) {
	var routes []navigation.Route

	switch role {
	case RoleUser:
		routes = append(routes, navigation.Route{Path: "/", Name: RouteHome, View: v.Home})
		routes = append(routes, pages(v)...)
	case RoleDemo:
		routes = []navigation.Route{
			{Path: "/", Name: RouteHome, View: v.Home},
			{Path: "/cutecate", Name: RouteCuteCat, View: v.CuteCat},
		}
	case RoleOperator:
		routes = []navigation.Route{
			{Path: "/", Name: RouteHome, View: v.HomeOperator},
			{Path: "/campain/:" + ParamCampain, Name: RouteUsers, View: v.MyUsersOperator},
		}
		routes = append(routes, pages(v)...)
	default:
		return nil, role.Validate()
	}

	table, err := navigation.New(routes...)
	if err != nil {
		return nil, fmt.Errorf("%s table: %w", role, err)
	}
	return table, nil
}

// pages are the routes shared by the user and operator tables.
func pages(v Views) []navigation.Route {
	return []navigation.Route{
		{Path: "/contacts", Name: RouteContacts, View: v.Contacts},
		{Path: "/page_one", Name: RoutePageOne, View: v.PageOne},
		{Path: "/page_two", Name: RoutePageTwo, View: v.PageTwo},
	}
}
