package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/adyen/storefront-e2e/internal/models"
	"github.com/adyen/storefront-e2e/internal/services"
)

// stepParams maps the form's step field and the edit query to checkout steps
var stepParams = map[string]models.CheckoutStep{
	"personal": models.StepPersonalInfo,
	"address":  models.StepAddress,
	"delivery": models.StepDelivery,
	"payment":  models.StepPayment,
}

// CheckoutHandler serves the one-page checkout
type CheckoutHandler struct {
	renderer     *Renderer
	sessions     *SessionStore
	orderService services.OrderService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(renderer *Renderer, sessions *SessionStore, orderService services.OrderService) *CheckoutHandler {
	return &CheckoutHandler{
		renderer:     renderer,
		sessions:     sessions,
		orderService: orderService,
	}
}

// stepFlags marks checkout sections
type stepFlags struct {
	Personal bool
	Address  bool
	Delivery bool
	Payment  bool
}

func (f *stepFlags) set(step models.CheckoutStep) {
	switch step {
	case models.StepPersonalInfo:
		f.Personal = true
	case models.StepAddress:
		f.Address = true
	case models.StepDelivery:
		f.Delivery = true
	case models.StepPayment:
		f.Payment = true
	}
}

type checkoutView struct {
	pageData
	Error     string
	Personal  models.PersonalInfo
	Address   models.Address
	Countries []models.Country
	States    []models.State
	Open      stepFlags // the section showing its form
	Done      stepFlags // completed sections showing a summary
	Summary   cartSummary
}

// ServeHTTP handles GET and POST /shop/order
func (h *CheckoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.show(w, r)
	case http.MethodPost:
		h.submit(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *CheckoutHandler) show(w http.ResponseWriter, r *http.Request) {
	var view checkoutView
	empty := false
	h.sessions.View(w, r, func(s *ShopSession) {
		empty = s.Cart.IsEmpty()
		view = h.view(s, r.URL.Query().Get("edit"))
	})

	if empty {
		http.Redirect(w, r, "/shop/cart", http.StatusSeeOther)
		return
	}
	h.renderer.Render(w, http.StatusOK, "order.html", view)
}

func (h *CheckoutHandler) submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	step := r.PostForm.Get("step")
	var (
		view    checkoutView
		order   *models.Order
		stepErr error
	)
	err := h.sessions.With(w, r, func(s *ShopSession) error {
		if s.Cart.IsEmpty() {
			return models.ErrEmptyCart
		}

		stepErr = h.apply(s, step, r)
		if stepErr == nil && s.Checkout.Reached(models.StepPlaced) {
			placed, err := h.orderService.PlaceOrder(&s.Cart, &s.Checkout)
			if err != nil {
				// Leave the visitor on the payment step to try again
				s.Checkout.Step = models.StepPayment
				return err
			}
			order = placed
			s.Reset()
			return nil
		}

		if stepErr != nil {
			view = h.view(s, step)
			view.Error = stepErr.Error()
			// Keep what the visitor typed
			if step == "personal" {
				view.Personal = personalFromForm(r)
			}
			if step == "address" {
				view.Address = addressFromForm(r)
				view.States = statesFor(view.Address.CountryID)
			}
		}
		return nil
	})

	switch {
	case errors.Is(err, models.ErrEmptyCart):
		http.Redirect(w, r, "/shop/cart", http.StatusSeeOther)
	case err != nil:
		log.Printf("Error placing order: %v", err)
		http.Error(w, "Failed to place order", http.StatusInternalServerError)
	case order != nil:
		http.Redirect(w, r, "/shop/order-confirmation?id_order="+order.ID, http.StatusSeeOther)
	case stepErr != nil:
		log.Printf("Checkout step %s rejected: %v", step, stepErr)
		h.renderer.Render(w, http.StatusUnprocessableEntity, "order.html", view)
	default:
		http.Redirect(w, r, "/shop/order", http.StatusSeeOther)
	}
}

// apply submits one checkout section to the session's progress
func (h *CheckoutHandler) apply(s *ShopSession, step string, r *http.Request) error {
	switch step {
	case "personal":
		return s.Checkout.SubmitPersonalInfo(personalFromForm(r), r.PostForm.Get("customer_privacy") == "1")
	case "address":
		return s.Checkout.SubmitAddress(addressFromForm(r))
	case "delivery":
		return s.Checkout.ConfirmDelivery(r.PostForm.Get("delivery_option"))
	case "payment":
		return s.Checkout.Place(r.PostForm.Get("payment-option"), r.PostForm.Get("conditions_to_approve[terms-and-conditions]") == "1")
	default:
		return fmt.Errorf("unknown checkout step %q", step)
	}
}

func (h *CheckoutHandler) view(s *ShopSession, edit string) checkoutView {
	progress := s.Checkout

	open := progress.Step
	if step, ok := stepParams[edit]; ok && step < progress.Step {
		open = step
	}

	view := checkoutView{
		Personal:  progress.Personal,
		Address:   progress.Address,
		Countries: models.Countries(),
		Summary:   summarize(&s.Cart),
	}
	view.Title = "Checkout"
	view.CartCount = s.Cart.ItemCount()

	if view.Address.CountryID == 0 {
		view.Address.CountryID = models.CountryFrance
	}
	view.States = statesFor(view.Address.CountryID)

	view.Open.set(open)
	for step := models.StepPersonalInfo; step < progress.Step; step++ {
		if step != open {
			view.Done.set(step)
		}
	}
	return view
}

func personalFromForm(r *http.Request) models.PersonalInfo {
	return models.PersonalInfo{
		FirstName:  r.PostForm.Get("firstname"),
		LastName:   r.PostForm.Get("lastname"),
		Email:      r.PostForm.Get("email"),
		Newsletter: r.PostForm.Get("newsletter") == "1",
	}
}

func addressFromForm(r *http.Request) models.Address {
	countryID, _ := strconv.Atoi(r.PostForm.Get("id_country"))
	stateID, _ := strconv.Atoi(r.PostForm.Get("id_state"))
	return models.Address{
		Address1:  r.PostForm.Get("address1"),
		City:      r.PostForm.Get("city"),
		Postcode:  r.PostForm.Get("postcode"),
		CountryID: countryID,
		StateID:   stateID,
	}
}

func statesFor(countryID int) []models.State {
	country, ok := models.FindCountry(countryID)
	if !ok {
		return nil
	}
	return country.States
}

// StatesHandler feeds the dependent state dropdown
type StatesHandler struct{}

// NewStatesHandler creates a new states handler
func NewStatesHandler() *StatesHandler {
	return &StatesHandler{}
}

// StateResponse is one state option
type StateResponse struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// StatesResponse lists the states of a country; empty when it has none
type StatesResponse struct {
	States []StateResponse `json:"states"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// ServeHTTP handles GET /shop/ajax/states?id_country=
func (h *StatesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		sendErrorResponse(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	countryID, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get("id_country")))
	if err != nil {
		sendErrorResponse(w, "id_country must be a number", http.StatusBadRequest)
		return
	}
	country, ok := models.FindCountry(countryID)
	if !ok {
		sendErrorResponse(w, "Unknown country", http.StatusNotFound)
		return
	}

	resp := StatesResponse{States: []StateResponse{}}
	for _, s := range country.States {
		resp.States = append(resp.States, StateResponse{ID: s.ID, Name: s.Name})
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}

// sendErrorResponse sends a JSON error response
func sendErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}
