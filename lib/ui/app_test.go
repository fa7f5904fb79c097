// Copyright 2026 The Drivelot Authors
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/drivelot/drivelot/lib/api"
	"github.com/drivelot/drivelot/lib/session"
)

// newTestApp builds an App over a temp-dir session store and a gateway
// pointed at a dead address. Tests drive the models directly and never
// execute the returned fetch commands, so nothing dials out.
func newTestApp(t *testing.T) *App {
	t.Helper()
	store := session.NewStore(filepath.Join(t.TempDir(), "token"))
	return &App{
		Session:        store,
		API:            api.NewForTesting("http://127.0.0.1:0", store),
		RequestTimeout: time.Second,
		UploadTimeout:  time.Second,
		Theme:          DefaultTheme,
		Keys:           DefaultKeyMap,
	}
}

// loginAs installs a session with the given role into the app's store.
func loginAs(t *testing.T, app *App, role session.Role) {
	t.Helper()
	claims := jwt.MapClaims{"sub": "user@example.com"}
	if role != "" {
		claims["role"] = string(role)
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	if err != nil {
		t.Fatal(err)
	}
	if err := app.Session.Login(token); err != nil {
		t.Fatal(err)
	}
}

func TestNavigateGuardRedirectsLoggedOutToLogin(t *testing.T) {
	t.Parallel()

	model := NewModel(newTestApp(t))
	updated, _ := model.navigate(navigateMsg{route: RouteForm})
	if got := updated.(Model).route; got != RouteLogin {
		t.Errorf("route = %v, want RouteLogin", got)
	}
}

func TestNavigateGuardRedirectsWrongRoleHome(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	loginAs(t, app, session.RoleDealer)

	// The submission form requires CONSUMER; a dealer lands on home
	// with a notice, not on the login page.
	model := NewModel(app)
	updated, _ := model.navigate(navigateMsg{route: RouteForm})
	result := updated.(Model)
	if result.route != RouteHome {
		t.Errorf("route = %v, want RouteHome", result.route)
	}
	if result.status == "" || !result.statusFailure {
		t.Error("denied navigation set no failure notice")
	}
}

func TestNavigatePermitsMatchingRole(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	loginAs(t, app, session.RoleConsumer)

	model := NewModel(app)
	updated, _ := model.navigate(navigateMsg{route: RouteForm})
	if got := updated.(Model).route; got != RouteForm {
		t.Errorf("route = %v, want RouteForm", got)
	}
}

func TestGuardedPagesAcceptAnyRole(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	loginAs(t, app, session.RoleDealer)

	model := NewModel(app)
	updated, _ := model.navigate(navigateMsg{route: RouteNotifications})
	if got := updated.(Model).route; got != RouteNotifications {
		t.Errorf("route = %v, want RouteNotifications", got)
	}
}

func TestPublicRoutesSkipTheGuard(t *testing.T) {
	t.Parallel()

	model := NewModel(newTestApp(t))
	updated, _ := model.navigate(navigateMsg{route: RouteBrowse})
	if got := updated.(Model).route; got != RouteBrowse {
		t.Errorf("route = %v, want RouteBrowse", got)
	}
}

func TestUnauthorizedFetchRoutesToLogin(t *testing.T) {
	t.Parallel()

	app := newTestApp(t)
	loginAs(t, app, session.RoleConsumer)

	model := NewModel(app)
	model.route = RouteNotifications

	updated, _ := model.Update(notificationsLoadedMsg{
		generation: 1,
		err:        &api.Error{StatusCode: http.StatusUnauthorized},
	})
	result := updated.(Model)
	if result.route != RouteLogin {
		t.Errorf("route after 401 = %v, want RouteLogin", result.route)
	}
	if !result.statusFailure {
		t.Error("401 set no failure notice")
	}
}

func TestOtherFetchErrorsStayOnPage(t *testing.T) {
	t.Parallel()

	model := NewModel(newTestApp(t))
	model.route = RouteBrowse
	model.browse.generation = 1

	updated, _ := model.Update(carsLoadedMsg{
		generation: 1,
		err:        &api.Error{StatusCode: http.StatusInternalServerError},
	})
	result := updated.(Model)
	if result.route != RouteBrowse {
		t.Errorf("route after 500 = %v, want RouteBrowse", result.route)
	}
	if result.browse.err == nil {
		t.Error("page did not record the fetch error")
	}
}

func TestGoBack(t *testing.T) {
	t.Parallel()

	model := NewModel(newTestApp(t))

	// Detail backs out to browse, browse to home.
	model.route = RouteDetail
	updated, _ := model.goBack()
	if got := updated.(Model).route; got != RouteBrowse {
		t.Errorf("back from detail = %v, want RouteBrowse", got)
	}

	model.route = RouteBrowse
	updated, _ = model.goBack()
	if got := updated.(Model).route; got != RouteHome {
		t.Errorf("back from browse = %v, want RouteHome", got)
	}
}
