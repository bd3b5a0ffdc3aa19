package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"grafibot/appctx"
	"grafibot/db"
	"grafibot/models"
	"grafibot/ordernotif"
	"grafibot/services"
)

// Fixed wire messages, rendered by the order form as-is.
const (
	chatUnavailableMessage   = "Serviço de chat indisponível no momento."
	chatEmptyMessage         = "Mensagem não pode ser vazia."
	chatProcessingMessage    = "Ocorreu um erro ao processar sua mensagem com a IA."
	orderIncompleteMessage   = "Dados incompletos para registrar o pedido."
	orderSuccessMessage      = "Pedido registrado! O chatbot já está ciente deste novo pedido."
	orderTableMissingMessage = "Erro interno: Tabela 'grafica' não encontrada."
	orderSaveErrorMessage    = "Erro ao salvar o pedido no banco de dados."
	orderRefreshWarning      = "Pedido salvo, mas o contexto do chatbot ainda não reflete este registro."
	orderQueryErrorMessage   = "Erro ao consultar pedidos."
	orderInvalidIDMessage    = "Identificador de pedido inválido."
	orderNotFoundMessage     = "Pedido não encontrado."
	orderInvalidLimitMessage = "Parâmetro 'limite' inválido."
)

type APIHandler struct {
	assistantService services.AssistantService
	ordersService    services.OrdersService
	staticDir        string
	listLimit        int
}

func NewAPIHandler(
	assistantService services.AssistantService,
	ordersService services.OrdersService,
	staticDir string,
	listLimit int,
) *APIHandler {
	return &APIHandler{
		assistantService: assistantService,
		ordersService:    ordersService,
		staticDir:        staticDir,
		listLimit:        listLimit,
	}
}

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply string `json:"reply"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// RegisterOrderRequest mirrors the order form payload. Required fields are
// pointers so a missing key is distinguishable from a zero value; the API
// only checks that the keys were sent.
type RegisterOrderRequest struct {
	Quantidade *int                `json:"quantidade"`
	Produto    *string             `json:"produto"`
	Material   *string             `json:"material"`
	Impressao  *string             `json:"impressao"`
	Largura    optionalDecimal     `json:"largura"`
	Altura     optionalDecimal     `json:"altura"`
	TipoCorte  *string             `json:"tipoCorte"`
	Acabamento *string             `json:"acabamento"`
	Extra      *string             `json:"extra"`
	ValorFinal *models.DecimalText `json:"valorFinal"`
}

type RegisterOrderResponse struct {
	Success string `json:"success"`
	Warning string `json:"warning,omitempty"`
}

// optionalDecimal absorbs the empty-string submissions the form produces
// for blank dimension inputs: null and "" both decode to an absent value.
type optionalDecimal struct {
	value *models.DecimalText
}

func (o *optionalDecimal) UnmarshalJSON(data []byte) error {
	token := strings.TrimSpace(string(data))
	if token == "null" || token == `""` {
		o.value = nil
		return nil
	}
	var d models.DecimalText
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	o.value = &d
	return nil
}

func (h *APIHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	log.Printf("💬 Chat request received from %s", r.RemoteAddr)

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse chat request body: %v", err)
		h.writeJSONError(w, http.StatusBadRequest, chatEmptyMessage)
		return
	}
	if req.Message == "" {
		h.writeJSONError(w, http.StatusBadRequest, chatEmptyMessage)
		return
	}

	reply, err := h.assistantService.SendMessage(r.Context(), req.Message)
	if err != nil {
		if errors.Is(err, services.ErrChatUnavailable) {
			log.Printf("❌ Chat request rejected - no session available")
			h.writeJSONError(w, http.StatusServiceUnavailable, chatUnavailableMessage)
			return
		}
		log.Printf("❌ Failed to process chat message: %v", err)
		h.writeJSONError(w, http.StatusServiceUnavailable, chatProcessingMessage)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, ChatResponse{Reply: reply})
}

func (h *APIHandler) HandleRegisterOrder(w http.ResponseWriter, r *http.Request) {
	requestID, _ := appctx.GetRequestID(r.Context())
	log.Printf("ℹ️ Order registration %s received from %s", requestID, r.RemoteAddr)

	var req RegisterOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Failed to parse order registration body: %v", err)
		h.writeJSONError(w, http.StatusBadRequest, orderIncompleteMessage)
		return
	}
	if req.Quantidade == nil || req.Produto == nil || req.ValorFinal == nil {
		log.Printf("❌ Order registration %s missing required fields", requestID)
		h.writeJSONError(w, http.StatusBadRequest, orderIncompleteMessage)
		return
	}

	order := req.toOrder()
	if err := h.ordersService.CreateOrder(r.Context(), order); err != nil {
		if errors.Is(err, db.ErrOrdersTableMissing) {
			log.Printf("❌ Order registration %s failed - grafica table does not exist", requestID)
			h.writeJSONError(w, http.StatusInternalServerError, orderTableMissingMessage)
			return
		}
		log.Printf("❌ Order registration %s failed: %v", requestID, err)
		h.writeJSONError(w, http.StatusInternalServerError, orderSaveErrorMessage)
		return
	}

	ordernotif.New(order)

	// The insert is committed; a refresh failure must not undo it.
	response := RegisterOrderResponse{Success: orderSuccessMessage}
	if err := h.assistantService.RefreshContext(r.Context()); err != nil {
		log.Printf("⚠️ Order %d saved but context refresh failed: %v", order.ID, err)
		response.Warning = orderRefreshWarning
	}

	h.writeJSONResponse(w, http.StatusCreated, response)
}

func (h *APIHandler) HandleListOrders(w http.ResponseWriter, r *http.Request) {
	log.Printf("📋 List orders request received from %s", r.RemoteAddr)

	limit := h.listLimit
	if raw := r.URL.Query().Get("limite"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			h.writeJSONError(w, http.StatusBadRequest, orderInvalidLimitMessage)
			return
		}
		if parsed < limit {
			limit = parsed
		}
	}

	orders, err := h.ordersService.ListRecentOrders(r.Context(), limit)
	if err != nil {
		if errors.Is(err, db.ErrOrdersTableMissing) {
			h.writeJSONError(w, http.StatusInternalServerError, orderTableMissingMessage)
			return
		}
		log.Printf("❌ Failed to list orders: %v", err)
		h.writeJSONError(w, http.StatusInternalServerError, orderQueryErrorMessage)
		return
	}
	if orders == nil {
		orders = []*models.Order{}
	}

	h.writeJSONResponse(w, http.StatusOK, orders)
}

func (h *APIHandler) HandleGetOrder(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars["id"], 10, 64)
	if err != nil || id <= 0 {
		h.writeJSONError(w, http.StatusBadRequest, orderInvalidIDMessage)
		return
	}
	log.Printf("📋 Get order %d request received from %s", id, r.RemoteAddr)

	maybeOrder, err := h.ordersService.GetOrderByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, db.ErrOrdersTableMissing) {
			h.writeJSONError(w, http.StatusInternalServerError, orderTableMissingMessage)
			return
		}
		log.Printf("❌ Failed to get order %d: %v", id, err)
		h.writeJSONError(w, http.StatusInternalServerError, orderQueryErrorMessage)
		return
	}
	if !maybeOrder.IsPresent() {
		h.writeJSONError(w, http.StatusNotFound, orderNotFoundMessage)
		return
	}

	h.writeJSONResponse(w, http.StatusOK, maybeOrder.MustGet())
}

func (h *APIHandler) SetupEndpoints(router *mux.Router) {
	log.Printf("🚀 Registering GrafiBot API endpoints")

	router.HandleFunc("/api/chat", h.HandleChat).Methods("POST")
	log.Printf("✅ POST /api/chat endpoint registered")

	router.HandleFunc("/api/registrar_pedido", h.HandleRegisterOrder).Methods("POST")
	log.Printf("✅ POST /api/registrar_pedido endpoint registered")

	router.HandleFunc("/api/pedidos", h.HandleListOrders).Methods("GET")
	log.Printf("✅ GET /api/pedidos endpoint registered")

	router.HandleFunc("/api/pedidos/{id}", h.HandleGetOrder).Methods("GET")
	log.Printf("✅ GET /api/pedidos/{id} endpoint registered")

	// Everything else falls through to the static order form. Registered
	// last so it never shadows the API routes.
	router.PathPrefix("/").Handler(http.FileServer(http.Dir(h.staticDir))).Methods("GET")
	log.Printf("✅ Static file serving registered from %s", h.staticDir)
}

// toOrder maps the request onto the storage model. Optional text fields
// submitted as empty strings become NULL, the way the API always stored
// them; material, impressao and acabamento pass through untouched so the
// store decides what is acceptable.
func (r *RegisterOrderRequest) toOrder() *models.Order {
	return &models.Order{
		Quantidade: *r.Quantidade,
		Produto:    *r.Produto,
		Material:   r.Material,
		Impressao:  r.Impressao,
		Largura:    r.Largura.value,
		Altura:     r.Altura.value,
		TipoCorte:  nilIfEmpty(r.TipoCorte),
		Acabamento: r.Acabamento,
		Extra:      nilIfEmpty(r.Extra),
		ValorFinal: *r.ValorFinal,
	}
}

func nilIfEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func (h *APIHandler) writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("❌ Failed to encode JSON response: %v", err)
	}
}

func (h *APIHandler) writeJSONError(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSONResponse(w, statusCode, ErrorResponse{Error: message})
}
