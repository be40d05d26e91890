package main

import (
	"net/http"
)

func (app *application) routes() http.Handler {
	mux := http.NewServeMux()

	session := func(next http.Handler) http.Handler {
		return app.recoverPanic(app.logRequest(secureHeaders(app.crossOriginProtection(
			noCache(app.sessionManager.LoadAndSave(app.deviceSession(next)))))))
	}

	mux.Handle("GET /api/plan/{year}/{month}", session(http.HandlerFunc(app.planGET)))

	mux.Handle("GET /api/workouts/{date}", session(http.HandlerFunc(app.workoutGET)))
	mux.Handle("POST /api/workouts/{date}/complete", session(http.HandlerFunc(app.workoutCompletePOST)))
	mux.Handle("POST /api/workouts/{date}/miss", session(http.HandlerFunc(app.workoutMissPOST)))

	mux.Handle("GET /api/profile", session(http.HandlerFunc(app.profileGET)))
	mux.Handle("PUT /api/profile", session(http.HandlerFunc(app.profilePUT)))

	mux.Handle("GET /api/measurements", session(http.HandlerFunc(app.measurementsGET)))
	mux.Handle("POST /api/measurements", session(http.HandlerFunc(app.measurementsPOST)))

	mux.Handle("GET /api/exercises", session(http.HandlerFunc(app.focusesGET)))
	mux.Handle("GET /api/exercises/{focus}", session(http.HandlerFunc(app.exercisesGET)))

	mux.Handle("GET /api/healthy", session(http.HandlerFunc(app.healthy)))

	return mux
}
