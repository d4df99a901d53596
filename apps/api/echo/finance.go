package echoapi

import (
	"context"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/PrimotionStudio/z1academic/core/finance"
)

type financeApi struct {
	svc      *finance.Service
	validate *validator.Validate
}

func registerFinanceAPI(g *echo.Group, deps *Deps) {
	api := financeApi{svc: deps.Services.Finance, validate: deps.Validate}

	fg := g.Group("/fees")
	fg.POST("", api.createFee)
	fg.GET("", api.queryFees)
	fdg := fg.Group("/:id", objectMiddleware("id", api.loadFee))
	fdg.PATCH("", api.updateFee)
	fdg.DELETE("", api.destroyFee)

	tg := g.Group("/transactions")
	tg.POST("", api.createTransaction)
	tg.GET("", api.queryTransactions)
	tdg := tg.Group("/:ref", objectMiddleware("ref", api.loadTransaction))
	tdg.GET("", api.retrieveTransaction)
	tdg.PATCH("", api.updateTransaction)
}

// Fees

func (api *financeApi) loadFee(ctx context.Context, id string) (interface{}, error) {
	return api.svc.GetFee(ctx, id)
}

func (api *financeApi) createFee(ctx echo.Context) error {
	var data finance.FeeInput
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeeInput")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	fee, err := api.svc.CreateFee(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating fee")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "New fee added", "fee": fee})
}

func (api *financeApi) queryFees(ctx echo.Context) error {
	fees, err := api.svc.QueryFees(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying fees")
	}
	if fees == nil {
		fees = []finance.Fee{}
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Fees found", "fees": fees})
}

func (api *financeApi) updateFee(ctx echo.Context) error {
	fee, err := contextObject[finance.Fee](ctx)
	if err != nil {
		return err
	}

	var data finance.FeeInput
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to FeeInput")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	if fee, err = api.svc.UpdateFee(ctx.Request().Context(), fee, data); err != nil {
		return errors.Wrap(err, "updating fee")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Fee edited", "fee": fee})
}

func (api *financeApi) destroyFee(ctx echo.Context) error {
	fee, err := contextObject[finance.Fee](ctx)
	if err != nil {
		return err
	}
	if err = api.svc.DeleteFee(ctx.Request().Context(), fee); err != nil {
		return errors.Wrap(err, "deleting fee")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Fee deleted", "fee": fee})
}

// Transactions

func (api *financeApi) loadTransaction(ctx context.Context, ref string) (interface{}, error) {
	return api.svc.GetTransaction(ctx, ref)
}

func (api *financeApi) createTransaction(ctx echo.Context) error {
	var data finance.NewTransaction
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTransaction")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	txn, err := api.svc.CreateTransaction(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating transaction")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"message": "Transaction started", "transaction": txn})
}

func (api *financeApi) queryTransactions(ctx echo.Context) error {
	filter := new(finance.TransactionFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to TransactionFilter")
	}

	txns, err := api.svc.QueryTransactions(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying transactions")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Transactions found", "transactions": txns})
}

func (api *financeApi) retrieveTransaction(ctx echo.Context) error {
	txn, err := contextObject[finance.TransactionDetail](ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Transaction found", "transaction": txn})
}

// updateTransaction records the outcome of the payment verification.
func (api *financeApi) updateTransaction(ctx echo.Context) error {
	detail, err := contextObject[finance.TransactionDetail](ctx)
	if err != nil {
		return err
	}

	var data finance.StatusUpdate
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusUpdate")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	txn, err := api.svc.UpdateStatus(ctx.Request().Context(), detail.Transaction, data)
	if err != nil {
		return errors.Wrap(err, "updating transaction status")
	}
	detail.Transaction = txn
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Transaction " + txn.Status, "transaction": detail})
}
