package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/attribution"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/auth"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/employee"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/invoice"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/membership"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/offer"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/payment"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/payroll"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/school"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/student"
	"github.com/AyoubEttalbi/Tikoschool-sub000/internal/transaction"
	utilsdb "github.com/AyoubEttalbi/Tikoschool-sub000/internal/utils/db"
)

func main() {
	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	db, err := utilsdb.Connect(context.Background())
	if err != nil {
		log.WithError(err).Fatal("could not connect to database")
	}

	for _, migrate := range []func(*gorm.DB) error{
		school.Migrate,
		employee.Migrate,
		student.Migrate,
		offer.Migrate,
		membership.Migrate,
		invoice.Migrate,
		payment.Migrate,
		attribution.Migrate,
		transaction.Migrate,
	} {
		if err := migrate(db); err != nil {
			log.WithError(err).Fatal("migration failed")
		}
	}

	// Handlers
	schoolHandler := school.NewHandler(db)
	employeeHandler := employee.NewHandler(db)
	studentHandler := student.NewHandler(db)
	offerHandler := offer.NewHandler(db)
	membershipHandler := membership.NewHandler(db)
	invoiceHandler := invoice.NewHandler(db)
	paymentHandler := payment.NewHandler(db)
	attributionHandler := attribution.NewHandler(db)
	transactionHandler := transaction.NewHandler(db)
	payrollHandler := payroll.NewHandler(db)

	// Router
	r := mux.NewRouter()
	r.HandleFunc("/login", employeeHandler.Login).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware)

	// Schools
	api.HandleFunc("/schools", schoolHandler.Create).Methods("POST")
	api.HandleFunc("/schools", schoolHandler.List).Methods("GET")
	api.HandleFunc("/schools/{id}", schoolHandler.Get).Methods("GET")
	api.HandleFunc("/schools/{id}", schoolHandler.Update).Methods("PUT")
	api.HandleFunc("/schools/{id}", schoolHandler.Delete).Methods("DELETE")

	// Employees
	api.HandleFunc("/employees", employeeHandler.Create).Methods("POST")
	api.HandleFunc("/employees", employeeHandler.List).Methods("GET")
	api.HandleFunc("/employees/{id}", employeeHandler.Get).Methods("GET")
	api.HandleFunc("/employees/{id}", employeeHandler.Update).Methods("PUT")
	api.HandleFunc("/employees/{id}", employeeHandler.Delete).Methods("DELETE")

	// Students
	api.HandleFunc("/students", studentHandler.Create).Methods("POST")
	api.HandleFunc("/students", studentHandler.List).Methods("GET")
	api.HandleFunc("/students/{id}", studentHandler.Get).Methods("GET")
	api.HandleFunc("/students/{id}", studentHandler.Update).Methods("PUT")
	api.HandleFunc("/students/{id}", studentHandler.Delete).Methods("DELETE")

	// Offers
	api.HandleFunc("/offers", offerHandler.Create).Methods("POST")
	api.HandleFunc("/offers", offerHandler.List).Methods("GET")
	api.HandleFunc("/offers/{id}", offerHandler.Get).Methods("GET")
	api.HandleFunc("/offers/{id}", offerHandler.Update).Methods("PUT")
	api.HandleFunc("/offers/{id}", offerHandler.Delete).Methods("DELETE")

	// Memberships
	api.HandleFunc("/memberships", membershipHandler.Create).Methods("POST")
	api.HandleFunc("/memberships", membershipHandler.List).Methods("GET")
	api.HandleFunc("/memberships/{id}", membershipHandler.Get).Methods("GET")
	api.HandleFunc("/memberships/{id}", membershipHandler.Update).Methods("PUT")
	api.HandleFunc("/memberships/{id}", membershipHandler.Delete).Methods("DELETE")

	// Invoices and payments
	api.HandleFunc("/memberships/{id}/invoices", invoiceHandler.Create).Methods("POST")
	api.HandleFunc("/invoices", invoiceHandler.List).Methods("GET")
	api.HandleFunc("/invoices/{id}", invoiceHandler.Get).Methods("GET")
	api.HandleFunc("/invoices/{id}", invoiceHandler.Delete).Methods("DELETE")
	api.HandleFunc("/invoices/{id}/payments", paymentHandler.Record).Methods("POST")
	api.HandleFunc("/invoices/{id}/payments", paymentHandler.ListByInvoice).Methods("GET")
	api.HandleFunc("/invoices/{id}/shares", attributionHandler.InvoiceShares).Methods("GET")

	// Teacher earnings
	api.HandleFunc("/teachers/{id}/earnings", attributionHandler.Earnings).Methods("GET")

	// Transactions
	api.HandleFunc("/transactions", transactionHandler.Create).Methods("POST")
	api.HandleFunc("/transactions", transactionHandler.List).Methods("GET")
	api.HandleFunc("/transactions/recur", transactionHandler.Recur).Methods("POST")
	api.HandleFunc("/transactions/{id}", transactionHandler.Get).Methods("GET")
	api.HandleFunc("/transactions/{id}", transactionHandler.Delete).Methods("DELETE")

	// Reports
	api.HandleFunc("/reports/payroll", payrollHandler.Ledgers).Methods("GET")
	api.HandleFunc("/reports/summary", payrollHandler.Summary).Methods("GET")

	// Recurring salaries and rents roll on the first of every month.
	c := cron.New()
	if _, err := c.AddFunc("0 2 1 * *", func() {
		rolled, err := transaction.RollRecurring(db, time.Now())
		if err != nil {
			log.WithError(err).Error("recurring roll failed")
			return
		}
		log.WithField("rolled", rolled).Info("recurring transactions rolled")
	}); err != nil {
		log.WithError(err).Fatal("could not schedule recurring roll")
	}
	c.Start()
	defer c.Stop()

	handler := cors.New(cors.Options{
		AllowedOrigins:   []string{envOr("CORS_ORIGIN", "*")},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler(requestLogger(log, r))

	addr := ":" + envOr("PORT", "8080")
	log.WithField("addr", addr).Info("server listening")
	log.Fatal(http.ListenAndServe(addr, handler))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func requestLogger(log *logrus.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start).String(),
		}).Info("request")
	})
}
