package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"gorm.io/gorm"
)

type NegotiationService interface {
	Propose(ctx context.Context, productID, buyerID uint64, proposedPrice uint) (*model.PriceProposal, error)
	ListByProduct(ctx context.Context, productID, callerID uint64) ([]model.PriceProposal, error)
	Decide(ctx context.Context, productID, proposalID, callerID uint64, status string) (*model.PriceProposal, error)
}

type negotiationService struct {
	proposals repository.ProposalRepository
	products  repository.ProductRepository
	convs     repository.ConversationRepository
	notify    NotificationService
	tx        repository.TxRunner
}

func NewNegotiationService(
	proposals repository.ProposalRepository,
	products repository.ProductRepository,
	convs repository.ConversationRepository,
	notify NotificationService,
	tx repository.TxRunner,
) NegotiationService {
	return &negotiationService{proposals: proposals, products: products, convs: convs, notify: notify, tx: tx}
}

func (s *negotiationService) Propose(ctx context.Context, productID, buyerID uint64, proposedPrice uint) (*model.PriceProposal, error) {
	if proposedPrice == 0 {
		return nil, invalidInput("proposedPrice must be a positive number")
	}
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.Status != model.ProductStatusAvailable {
		return nil, invalidInput("product is not available")
	}
	if !product.Negotiable {
		return nil, invalidInput("this product does not accept price proposals")
	}
	if buyerID == product.UserID {
		return nil, invalidInput("you cannot propose a price on your own product")
	}
	if proposedPrice >= product.Price {
		return nil, invalidInput("proposed price must be less than the product price")
	}

	existing, err := s.proposals.FindByBuyerAndProduct(ctx, buyerID, productID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	var proposal *model.PriceProposal
	if existing != nil {
		if existing.Status == model.ProposalStatusPending {
			return nil, ErrConflict
		}
		// A settled proposal from the same buyer is recycled with the new price.
		if err := s.proposals.Reopen(ctx, existing.ID, proposedPrice); err != nil {
			return nil, err
		}
		existing.ProposedPrice = proposedPrice
		existing.Status = model.ProposalStatusPending
		proposal = existing
	} else {
		proposal = &model.PriceProposal{
			ProductID:     productID,
			BuyerID:       buyerID,
			SellerID:      product.UserID,
			ProposedPrice: proposedPrice,
			Status:        model.ProposalStatusPending,
		}
		if err := s.proposals.Create(ctx, proposal); err != nil {
			return nil, err
		}
	}

	link := fmt.Sprintf("/product/%d", productID)
	s.notify.Notify(ctx, product.UserID, model.NotificationTypePriceProposal,
		"Proposition de prix",
		fmt.Sprintf("Proposition de prix: %d Ar pour %s", proposedPrice, product.Title),
		&link)
	return proposal, nil
}

// ListByProduct shows the seller every proposal and a buyer only their own.
func (s *negotiationService) ListByProduct(ctx context.Context, productID, callerID uint64) ([]model.PriceProposal, error) {
	product, err := s.products.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if product.UserID == callerID {
		return s.proposals.ListByProduct(ctx, productID)
	}
	return s.proposals.ListByProductAndBuyer(ctx, productID, callerID)
}

// Decide settles a pending proposal. Accepting reserves the listing and
// guarantees a conversation exists between the parties; both effects commit
// in the same transaction as the proposal update. Of two racing deciders
// only the first wins; the loser observes ErrAlreadyProcessed.
func (s *negotiationService) Decide(ctx context.Context, productID, proposalID, callerID uint64, status string) (*model.PriceProposal, error) {
	target := model.ProposalStatus(status)
	if target != model.ProposalStatusAccepted && target != model.ProposalStatusRejected {
		return nil, invalidInput("status must be 'accepted' or 'rejected'")
	}

	proposal, err := s.proposals.FindByID(ctx, proposalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if proposal.ProductID != productID {
		return nil, ErrNotFound
	}
	if proposal.SellerID != callerID {
		return nil, ErrForbidden
	}
	if proposal.Status != model.ProposalStatusPending {
		return nil, ErrAlreadyProcessed
	}

	err = s.tx.InTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.proposals.WithTx(tx).SettleIfPending(ctx, proposalID, target)
		if err != nil {
			return err
		}
		if rows == 0 {
			return ErrAlreadyProcessed
		}
		if target == model.ProposalStatusAccepted {
			if err := s.products.WithTx(tx).UpdateStatus(ctx, productID, model.ProductStatusReserved); err != nil {
				return err
			}
			if _, err := s.convs.WithTx(tx).FindOrCreate(ctx, productID, proposal.BuyerID, proposal.SellerID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	proposal.Status = target

	link := fmt.Sprintf("/product/%d", productID)
	if target == model.ProposalStatusAccepted {
		s.notify.Notify(ctx, proposal.BuyerID, model.NotificationTypeProposalAccepted,
			"Proposition acceptée", "Votre proposition a été acceptée!", &link)
	} else {
		s.notify.Notify(ctx, proposal.BuyerID, model.NotificationTypeProposalRejected,
			"Proposition refusée", "Votre proposition a été refusée", &link)
	}
	return proposal, nil
}
