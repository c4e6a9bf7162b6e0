// Package api содержит HTTP обработчики REST API сервиса землепользования.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"landuse_service/internal/domain/model"
)

// Engine — операции вычислительного движка, нужные HTTP-слою.
type Engine interface {
	ProjectUrbanization(ctx context.Context, projectID int64, src model.Source, force bool) (*model.UrbanizationResult, error)
	ProjectRenovation(ctx context.Context, projectID int64, src model.Source, force bool) (*model.RenovationResult, error)
	ContextUrbanization(ctx context.Context, projectID int64, src model.Source, force bool) (*model.UrbanizationWithContext, error)
	ContextRenovation(ctx context.Context, projectID int64, src model.Source, force bool) (*model.RenovationWithContext, error)
	TerritoryUrbanization(ctx context.Context, territoryID int64, src model.Source, force bool) (*model.UrbanizationResult, error)
	TerritoryArea(ctx context.Context, territoryID int64, src model.Source, force bool) (*model.AreaResult, error)
	ProjectArea(ctx context.Context, projectID int64, src model.Source, force bool) (*model.AreaResult, error)
	TerritoryServices(ctx context.Context, territoryID int64, serviceType string, src model.Source, force bool) (*model.ServiceCounts, error)
	ScenarioPercentages(ctx context.Context, scenarioID int64, src model.Source, force bool) (*model.PercentagesResult, error)
}

// Handler обрабатывает HTTP запросы, транслируя ошибки движка в коды ответа.
type Handler struct {
	engine  Engine
	log     *zap.Logger
	logFile string
}

func NewHandler(engine Engine, log *zap.Logger, logFile string) *Handler {
	return &Handler{engine: engine, log: log, logFile: logFile}
}

// Register привязывает обработчики к маршрутам.
func (h *Handler) Register(r *mux.Router) {
	r.HandleFunc("/api/projects/{project_id}/urbanization_level", h.UrbanizationLevel).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{project_id}/renovation_potential", h.RenovationPotential).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{project_id}/context/urbanization_level", h.ContextUrbanizationLevel).Methods(http.MethodGet)
	r.HandleFunc("/api/projects/{project_id}/context/renovation_potential", h.ContextRenovationPotential).Methods(http.MethodGet)
	r.HandleFunc("/api/scenarios/{scenario_id}/landuse_percentages", h.LandusePercentages).Methods(http.MethodGet)
	r.HandleFunc("/api/indicators/{territory_id}/calculate_territory_urbanization", h.TerritoryUrbanization).Methods(http.MethodGet)
	r.HandleFunc("/api/indicators/{territory_id}/calculate_area_indicator", h.TerritoryArea).Methods(http.MethodGet)
	r.HandleFunc("/api/indicators/{territory_id}/services_count_indicator", h.ServicesCount).Methods(http.MethodGet)
	r.HandleFunc("/api/indicators/{project_id}/calculate_project_area_indicator", h.ProjectArea).Methods(http.MethodGet)
	r.HandleFunc("/health_check/ping", h.HealthCheck).Methods(http.MethodGet)
	r.HandleFunc("/logs", h.Logs).Methods(http.MethodGet)
}

// UrbanizationLevel обрабатывает запрос уровня урбанизации проекта.
// Эндпоинт: GET /api/projects/{project_id}/urbanization_level
//
// @Summary      Уровень урбанизации проекта
// @Description  Вычисляет уровень урбанизации по зонам землепользования и плотности сервисов внутри границы проекта
// @Tags         projects
// @Produce      json
// @Param        project_id  path      int     true   "Идентификатор проекта"
// @Param        source      query     string  false  "Источник данных: PZZ, OSM или User"  default(PZZ)
// @Param        force       query     bool    false  "Пересчитать, игнорируя кэш"
// @Success      200  {object}  model.UrbanizationResult
// @Failure      400  {object}  map[string]string  "Вырожденная геометрия или неверный источник"
// @Failure      404  {object}  map[string]string  "Проект не найден"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка"
// @Router       /api/projects/{project_id}/urbanization_level [get]
func (h *Handler) UrbanizationLevel(w http.ResponseWriter, r *http.Request) {
	id, src, force, err := requestParams(r, "project_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	result, err := h.engine.ProjectUrbanization(r.Context(), id, src, force)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// RenovationPotential обрабатывает запрос потенциала реновации проекта.
// Эндпоинт: GET /api/projects/{project_id}/renovation_potential
//
// @Summary      Потенциал реновации проекта
// @Description  Вычисляет потенциал реновации по реновационным категориям и состоянию застройки внутри границы проекта
// @Tags         projects
// @Produce      json
// @Param        project_id  path      int     true   "Идентификатор проекта"
// @Param        source      query     string  false  "Источник данных: PZZ, OSM или User"  default(PZZ)
// @Param        force       query     bool    false  "Пересчитать, игнорируя кэш"
// @Success      200  {object}  model.RenovationResult
// @Failure      400  {object}  map[string]string  "Вырожденная геометрия или неверный источник"
// @Failure      404  {object}  map[string]string  "Проект не найден"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка"
// @Router       /api/projects/{project_id}/renovation_potential [get]
func (h *Handler) RenovationPotential(w http.ResponseWriter, r *http.Request) {
	id, src, force, err := requestParams(r, "project_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	result, err := h.engine.ProjectRenovation(r.Context(), id, src, force)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// ContextUrbanizationLevel обрабатывает запрос уровня урбанизации проекта
// вместе с его контекстом.
// Эндпоинт: GET /api/projects/{project_id}/context/urbanization_level
//
// @Summary      Уровень урбанизации проекта и контекста
// @Description  Вычисляет уровень урбанизации для границы проекта и для неё же, расширенной контекстным буфером
// @Tags         projects
// @Produce      json
// @Param        project_id  path      int     true   "Идентификатор проекта"
// @Param        source      query     string  false  "Источник данных: PZZ, OSM или User"  default(PZZ)
// @Param        force       query     bool    false  "Пересчитать, игнорируя кэш"
// @Success      200  {object}  model.UrbanizationWithContext
// @Failure      400  {object}  map[string]string  "Вырожденная геометрия или неверный источник"
// @Failure      404  {object}  map[string]string  "Проект не найден"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка"
// @Router       /api/projects/{project_id}/context/urbanization_level [get]
func (h *Handler) ContextUrbanizationLevel(w http.ResponseWriter, r *http.Request) {
	id, src, force, err := requestParams(r, "project_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	result, err := h.engine.ContextUrbanization(r.Context(), id, src, force)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// ContextRenovationPotential обрабатывает запрос потенциала реновации проекта
// вместе с его контекстом.
// Эндпоинт: GET /api/projects/{project_id}/context/renovation_potential
//
// @Summary      Потенциал реновации проекта и контекста
// @Description  Вычисляет потенциал реновации для границы проекта и для неё же, расширенной контекстным буфером
// @Tags         projects
// @Produce      json
// @Param        project_id  path      int     true   "Идентификатор проекта"
// @Param        source      query     string  false  "Источник данных: PZZ, OSM или User"  default(PZZ)
// @Param        force       query     bool    false  "Пересчитать, игнорируя кэш"
// @Success      200  {object}  model.RenovationWithContext
// @Failure      400  {object}  map[string]string  "Вырожденная геометрия или неверный источник"
// @Failure      404  {object}  map[string]string  "Проект не найден"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка"
// @Router       /api/projects/{project_id}/context/renovation_potential [get]
func (h *Handler) ContextRenovationPotential(w http.ResponseWriter, r *http.Request) {
	id, src, force, err := requestParams(r, "project_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	result, err := h.engine.ContextRenovation(r.Context(), id, src, force)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// LandusePercentages обрабатывает запрос распределения землепользования сценария.
// Эндпоинт: GET /api/scenarios/{scenario_id}/landuse_percentages
//
// @Summary      Распределение землепользования сценария
// @Description  Возвращает процентное распределение категорий землепользования по зонам сценария, сумма равна 100
// @Tags         scenarios
// @Produce      json
// @Param        scenario_id  path      int     true   "Идентификатор сценария"
// @Param        source       query     string  false  "Вариант зонирования: PZZ или User"  default(PZZ)
// @Param        force        query     bool    false  "Пересчитать, игнорируя кэш"
// @Success      200  {object}  model.PercentagesResult
// @Failure      400  {object}  map[string]string  "Неверный источник"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка"
// @Router       /api/scenarios/{scenario_id}/landuse_percentages [get]
func (h *Handler) LandusePercentages(w http.ResponseWriter, r *http.Request) {
	id, src, force, err := requestParams(r, "scenario_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	result, err := h.engine.ScenarioPercentages(r.Context(), id, src, force)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// TerritoryUrbanization обрабатывает запрос уровня урбанизации территории.
// Эндпоинт: GET /api/indicators/{territory_id}/calculate_territory_urbanization
//
// @Summary      Уровень урбанизации территории
// @Description  Вычисляет уровень урбанизации территории и передаёт значение индикатора на сохранение
// @Tags         indicators
// @Produce      json
// @Param        territory_id  path      int     true   "Идентификатор территории"
// @Param        source        query     string  false  "Источник данных: PZZ, OSM или User"  default(PZZ)
// @Param        force         query     bool    false  "Пересчитать, игнорируя кэш"
// @Success      200  {object}  model.UrbanizationResult
// @Failure      400  {object}  map[string]string  "Вырожденная геометрия или неверный источник"
// @Failure      404  {object}  map[string]string  "Территория не найдена"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка"
// @Router       /api/indicators/{territory_id}/calculate_territory_urbanization [get]
func (h *Handler) TerritoryUrbanization(w http.ResponseWriter, r *http.Request) {
	id, src, force, err := requestParams(r, "territory_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	result, err := h.engine.TerritoryUrbanization(r.Context(), id, src, force)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// TerritoryArea обрабатывает запрос площадного индикатора территории.
// Эндпоинт: GET /api/indicators/{territory_id}/calculate_area_indicator
//
// @Summary      Площадной индикатор территории
// @Description  Вычисляет площадь территории и распределение площадей по категориям землепользования, сохраняет площадь в км²
// @Tags         indicators
// @Produce      json
// @Param        territory_id  path      int     true   "Идентификатор территории"
// @Param        source        query     string  false  "Источник данных: PZZ, OSM или User"  default(PZZ)
// @Param        force         query     bool    false  "Пересчитать, игнорируя кэш"
// @Success      200  {object}  model.AreaResult
// @Failure      400  {object}  map[string]string  "Вырожденная геометрия или неверный источник"
// @Failure      404  {object}  map[string]string  "Территория не найдена"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка"
// @Router       /api/indicators/{territory_id}/calculate_area_indicator [get]
func (h *Handler) TerritoryArea(w http.ResponseWriter, r *http.Request) {
	id, src, force, err := requestParams(r, "territory_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	result, err := h.engine.TerritoryArea(r.Context(), id, src, force)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// ServicesCount обрабатывает запрос числа сервисов внутри территории.
// Эндпоинт: GET /api/indicators/{territory_id}/services_count_indicator
//
// @Summary      Число сервисов внутри территории
// @Description  Считает точки сервисов внутри границы территории по типам, опционально ограничивая подсчёт одним типом
// @Tags         indicators
// @Produce      json
// @Param        territory_id  path      int     true   "Идентификатор территории"
// @Param        service_type  query     string  false  "Ограничить подсчёт одним типом сервиса"
// @Param        source        query     string  false  "Источник данных: PZZ, OSM или User"  default(PZZ)
// @Param        force         query     bool    false  "Пересчитать, игнорируя кэш"
// @Success      200  {object}  model.ServiceCounts
// @Failure      400  {object}  map[string]string  "Вырожденная геометрия или неверный источник"
// @Failure      404  {object}  map[string]string  "Территория не найдена"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка"
// @Router       /api/indicators/{territory_id}/services_count_indicator [get]
func (h *Handler) ServicesCount(w http.ResponseWriter, r *http.Request) {
	id, src, force, err := requestParams(r, "territory_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	serviceType := r.URL.Query().Get("service_type")
	result, err := h.engine.TerritoryServices(r.Context(), id, serviceType, src, force)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// ProjectArea обрабатывает запрос площадного индикатора проекта.
// Эндпоинт: GET /api/indicators/{project_id}/calculate_project_area_indicator
//
// @Summary      Площадной индикатор проекта
// @Description  Вычисляет площадь проекта и распределение площадей по категориям землепользования
// @Tags         indicators
// @Produce      json
// @Param        project_id  path      int     true   "Идентификатор проекта"
// @Param        source      query     string  false  "Источник данных: PZZ, OSM или User"  default(PZZ)
// @Param        force       query     bool    false  "Пересчитать, игнорируя кэш"
// @Success      200  {object}  model.AreaResult
// @Failure      400  {object}  map[string]string  "Вырожденная геометрия или неверный источник"
// @Failure      404  {object}  map[string]string  "Проект не найден"
// @Failure      500  {object}  map[string]string  "Внутренняя ошибка"
// @Router       /api/indicators/{project_id}/calculate_project_area_indicator [get]
func (h *Handler) ProjectArea(w http.ResponseWriter, r *http.Request) {
	id, src, force, err := requestParams(r, "project_id")
	if err != nil {
		h.writeError(w, err)
		return
	}
	result, err := h.engine.ProjectArea(r.Context(), id, src, force)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, result)
}

// HealthCheck отвечает на проверку живости сервиса.
// Эндпоинт: GET /health_check/ping
//
// @Summary      Проверка живости
// @Tags         operational
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health_check/ping [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Logs отдаёт файл лога сервиса.
// Эндпоинт: GET /logs
//
// @Summary      Лог сервиса
// @Tags         operational
// @Produce      plain
// @Success      200  {string}  string
// @Router       /logs [get]
func (h *Handler) Logs(w http.ResponseWriter, r *http.Request) {
	http.ServeFile(w, r, h.logFile)
}

// requestParams разбирает идентификатор из пути и общие параметры запроса.
func requestParams(r *http.Request, name string) (int64, model.Source, bool, error) {
	vars := mux.Vars(r)
	id, err := strconv.ParseInt(vars[name], 10, 64)
	if err != nil || id <= 0 {
		return 0, "", false, errBadID{name: name}
	}
	src, err := model.ParseSource(r.URL.Query().Get("source"))
	if err != nil {
		return 0, "", false, err
	}
	force := r.URL.Query().Get("force") == "true"
	return id, src, force, nil
}

type errBadID struct {
	name string
}

func (e errBadID) Error() string {
	return fmt.Sprintf("invalid %s: must be a positive integer", e.name)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("failed to encode response", zap.Error(err))
	}
}

// writeError транслирует ошибку движка в код ответа: вырожденная геометрия
// и неверные параметры — 400, неразрешённый scope — 404, остальное — 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		degenerate *model.DegenerateGeometryError
		unresolved *model.UnresolvedScopeError
		badID      errBadID
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &degenerate):
		status = http.StatusBadRequest
	case errors.As(err, &unresolved):
		status = http.StatusNotFound
	case errors.Is(err, model.ErrInvalidSource):
		status = http.StatusBadRequest
	case errors.As(err, &badID):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	h.writeJSON(w, status, map[string]string{"error": err.Error()})
}
