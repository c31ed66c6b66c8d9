package service

import (
	"context"
	"strings"
	"time"

	"github.com/bazary/bazary-backend/internal/model"
	"github.com/bazary/bazary-backend/internal/repository"
	"gorm.io/gorm"
)

// In-memory repository fakes. Each mirrors the SQL behavior the real
// implementation relies on (conditional updates report rows affected,
// misses return gorm.ErrRecordNotFound).

type fakeTxRunner struct{}

func (fakeTxRunner) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type fakeProductRepo struct {
	products map[uint64]*model.Product
	nextID   uint64
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[uint64]*model.Product{}, nextID: 1}
}

func (r *fakeProductRepo) put(p *model.Product) *model.Product {
	if p.ID == 0 {
		p.ID = r.nextID
		r.nextID++
	} else if p.ID >= r.nextID {
		r.nextID = p.ID + 1
	}
	cp := *p
	r.products[p.ID] = &cp
	return r.products[p.ID]
}

func (r *fakeProductRepo) Create(ctx context.Context, p *model.Product) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) FindByID(ctx context.Context, id uint64) (*model.Product, error) {
	p, ok := r.products[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProductRepo) List(ctx context.Context, f repository.ProductFilter, limit, offset int) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.Hidden {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) ListByOwner(ctx context.Context, userID uint64) ([]model.Product, error) {
	var out []model.Product
	for _, p := range r.products {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProductRepo) ListAll(ctx context.Context, limit, offset int) ([]model.Product, int64, error) {
	var out []model.Product
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *fakeProductRepo) Update(ctx context.Context, p *model.Product) error {
	if _, ok := r.products[p.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *p
	r.products[p.ID] = &cp
	return nil
}

func (r *fakeProductRepo) UpdateStatus(ctx context.Context, id uint64, status model.ProductStatus) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Status = status
	return nil
}

func (r *fakeProductRepo) SetHidden(ctx context.Context, id uint64, hidden bool) error {
	p, ok := r.products[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.Hidden = hidden
	return nil
}

func (r *fakeProductRepo) IncrementViews(ctx context.Context, id uint64) error {
	if p, ok := r.products[id]; ok {
		p.Views++
	}
	return nil
}

func (r *fakeProductRepo) BumpIfCooledDown(ctx context.Context, id uint64, now, cutoff time.Time) (int64, error) {
	p, ok := r.products[id]
	if !ok || p.Status != model.ProductStatusAvailable {
		return 0, nil
	}
	if p.BumpedAt != nil && p.BumpedAt.After(cutoff) {
		return 0, nil
	}
	t := now
	p.BumpedAt = &t
	p.UpdatedAt = now
	return 1, nil
}

func (r *fakeProductRepo) DeleteCascade(ctx context.Context, tx *gorm.DB, id uint64) error {
	if _, ok := r.products[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *fakeProductRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) WithTx(tx *gorm.DB) repository.ProductRepository { return r }

type fakeProposalRepo struct {
	proposals map[uint64]*model.PriceProposal
	nextID    uint64
}

func newFakeProposalRepo() *fakeProposalRepo {
	return &fakeProposalRepo{proposals: map[uint64]*model.PriceProposal{}, nextID: 1}
}

func (r *fakeProposalRepo) Create(ctx context.Context, p *model.PriceProposal) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.proposals[p.ID] = &cp
	return nil
}

func (r *fakeProposalRepo) FindByID(ctx context.Context, id uint64) (*model.PriceProposal, error) {
	p, ok := r.proposals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *fakeProposalRepo) FindByBuyerAndProduct(ctx context.Context, buyerID, productID uint64) (*model.PriceProposal, error) {
	for _, p := range r.proposals {
		if p.BuyerID == buyerID && p.ProductID == productID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeProposalRepo) ListByProduct(ctx context.Context, productID uint64) ([]model.PriceProposal, error) {
	var out []model.PriceProposal
	for _, p := range r.proposals {
		if p.ProductID == productID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProposalRepo) ListByProductAndBuyer(ctx context.Context, productID, buyerID uint64) ([]model.PriceProposal, error) {
	var out []model.PriceProposal
	for _, p := range r.proposals {
		if p.ProductID == productID && p.BuyerID == buyerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakeProposalRepo) Reopen(ctx context.Context, id uint64, proposedPrice uint) error {
	p, ok := r.proposals[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	p.ProposedPrice = proposedPrice
	p.Status = model.ProposalStatusPending
	return nil
}

func (r *fakeProposalRepo) SettleIfPending(ctx context.Context, id uint64, status model.ProposalStatus) (int64, error) {
	p, ok := r.proposals[id]
	if !ok || p.Status != model.ProposalStatusPending {
		return 0, nil
	}
	p.Status = status
	return 1, nil
}

func (r *fakeProposalRepo) WithTx(tx *gorm.DB) repository.ProposalRepository { return r }

type fakeConversationRepo struct {
	convs    map[uint64]*model.Conversation
	messages map[uint64][]model.Message
	nextID   uint64
}

func newFakeConversationRepo() *fakeConversationRepo {
	return &fakeConversationRepo{
		convs:    map[uint64]*model.Conversation{},
		messages: map[uint64][]model.Message{},
		nextID:   1,
	}
}

func (r *fakeConversationRepo) FindOrCreate(ctx context.Context, productID, buyerID, sellerID uint64) (*model.Conversation, error) {
	for _, c := range r.convs {
		if c.ProductID == productID && c.BuyerID == buyerID && c.SellerID == sellerID {
			cp := *c
			return &cp, nil
		}
	}
	c := &model.Conversation{ID: r.nextID, ProductID: productID, BuyerID: buyerID, SellerID: sellerID}
	r.nextID++
	r.convs[c.ID] = c
	cp := *c
	return &cp, nil
}

func (r *fakeConversationRepo) FindByUser(ctx context.Context, userID uint64) ([]model.Conversation, error) {
	var out []model.Conversation
	for _, c := range r.convs {
		if c.BuyerID == userID || c.SellerID == userID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (r *fakeConversationRepo) FindByID(ctx context.Context, id uint64) (*model.Conversation, error) {
	c, ok := r.convs[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *fakeConversationRepo) ExistsForPair(ctx context.Context, productID, a, b uint64) (bool, error) {
	for _, c := range r.convs {
		if c.ProductID != productID {
			continue
		}
		if (c.BuyerID == a && c.SellerID == b) || (c.BuyerID == b && c.SellerID == a) {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeConversationRepo) CreateMessage(ctx context.Context, msg *model.Message) error {
	msg.ID = uint64(len(r.messages[msg.ConversationID]) + 1)
	r.messages[msg.ConversationID] = append(r.messages[msg.ConversationID], *msg)
	return nil
}

func (r *fakeConversationRepo) ListMessages(ctx context.Context, convID uint64) ([]model.Message, error) {
	return r.messages[convID], nil
}

func (r *fakeConversationRepo) LastMessage(ctx context.Context, convID uint64) (*model.Message, error) {
	msgs := r.messages[convID]
	if len(msgs) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	cp := msgs[len(msgs)-1]
	return &cp, nil
}

func (r *fakeConversationRepo) MarkMessagesRead(ctx context.Context, convID, readerID uint64) error {
	msgs := r.messages[convID]
	for i := range msgs {
		if msgs[i].SenderID != readerID {
			msgs[i].Read = true
		}
	}
	return nil
}

func (r *fakeConversationRepo) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var cnt int64
	for convID, msgs := range r.messages {
		c := r.convs[convID]
		if c == nil || (c.BuyerID != userID && c.SellerID != userID) {
			continue
		}
		for _, m := range msgs {
			if !m.Read && m.SenderID != userID {
				cnt++
			}
		}
	}
	return cnt, nil
}

func (r *fakeConversationRepo) Touch(ctx context.Context, id uint64) error { return nil }

func (r *fakeConversationRepo) WithTx(tx *gorm.DB) repository.ConversationRepository { return r }

type fakeUserRepo struct {
	users  map[uint64]*model.User
	nextID uint64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint64]*model.User{}, nextID: 1}
}

func (r *fakeUserRepo) put(u *model.User) *model.User {
	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	} else if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
	cp := *u
	r.users[u.ID] = &cp
	return r.users[u.ID]
}

func (r *fakeUserRepo) Create(ctx context.Context, u *model.User) error {
	u.ID = r.nextID
	r.nextID++
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeUserRepo) List(ctx context.Context, limit, offset int) ([]model.User, int64, error) {
	var out []model.User
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

func (r *fakeUserRepo) Update(ctx context.Context, u *model.User) error {
	if _, ok := r.users[u.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id uint64, role model.Role) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (r *fakeUserRepo) AdjustMannerTemp(ctx context.Context, id uint64, delta float64) error {
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	t := u.MannerTemp + delta
	if t < model.MannerTempMin {
		t = model.MannerTempMin
	}
	if t > model.MannerTempMax {
		t = model.MannerTempMax
	}
	u.MannerTemp = t
	return nil
}

func (r *fakeUserRepo) DeleteCascade(ctx context.Context, tx *gorm.DB, id uint64) error {
	if _, ok := r.users[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.users)), nil
}

func (r *fakeUserRepo) WithTx(tx *gorm.DB) repository.UserRepository { return r }

type fakeReviewRepo struct {
	reviews []model.Review
	nextID  uint64
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{nextID: 1}
}

func (r *fakeReviewRepo) Create(ctx context.Context, rv *model.Review) error {
	rv.ID = r.nextID
	r.nextID++
	r.reviews = append(r.reviews, *rv)
	return nil
}

func (r *fakeReviewRepo) Exists(ctx context.Context, reviewerID, productID uint64) (bool, error) {
	for _, rv := range r.reviews {
		if rv.ReviewerID == reviewerID && rv.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) ListForUser(ctx context.Context, reviewedID uint64) ([]model.Review, error) {
	var out []model.Review
	for _, rv := range r.reviews {
		if rv.ReviewedID == reviewedID {
			out = append(out, rv)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) CountForUser(ctx context.Context, reviewedID uint64) (int64, error) {
	list, _ := r.ListForUser(ctx, reviewedID)
	return int64(len(list)), nil
}

func (r *fakeReviewRepo) WithTx(tx *gorm.DB) repository.ReviewRepository { return r }

type fakeReportRepo struct {
	reports map[uint64]*model.Report
	nextID  uint64
}

func newFakeReportRepo() *fakeReportRepo {
	return &fakeReportRepo{reports: map[uint64]*model.Report{}, nextID: 1}
}

func (r *fakeReportRepo) Create(ctx context.Context, rp *model.Report) error {
	rp.ID = r.nextID
	r.nextID++
	cp := *rp
	r.reports[rp.ID] = &cp
	return nil
}

func (r *fakeReportRepo) FindByID(ctx context.Context, id uint64) (*model.Report, error) {
	rp, ok := r.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *rp
	return &cp, nil
}

func (r *fakeReportRepo) Exists(ctx context.Context, reporterID, productID uint64) (bool, error) {
	for _, rp := range r.reports {
		if rp.ReporterID == reporterID && rp.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReportRepo) List(ctx context.Context, status model.ReportStatus, limit, offset int) ([]model.Report, int64, error) {
	var out []model.Report
	for _, rp := range r.reports {
		if status != "" && rp.Status != status {
			continue
		}
		out = append(out, *rp)
	}
	return out, int64(len(out)), nil
}

func (r *fakeReportRepo) UpdateStatus(ctx context.Context, id uint64, status model.ReportStatus) error {
	rp, ok := r.reports[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	rp.Status = status
	return nil
}

func (r *fakeReportRepo) CountPending(ctx context.Context) (int64, error) {
	var cnt int64
	for _, rp := range r.reports {
		if rp.Status == model.ReportStatusPending {
			cnt++
		}
	}
	return cnt, nil
}

func (r *fakeReportRepo) WithTx(tx *gorm.DB) repository.ReportRepository { return r }

type fakeKeywordAlertRepo struct {
	alerts map[uint64]*model.KeywordAlert
	nextID uint64
}

func newFakeKeywordAlertRepo() *fakeKeywordAlertRepo {
	return &fakeKeywordAlertRepo{alerts: map[uint64]*model.KeywordAlert{}, nextID: 1}
}

func (r *fakeKeywordAlertRepo) Create(ctx context.Context, a *model.KeywordAlert) error {
	a.ID = r.nextID
	r.nextID++
	cp := *a
	r.alerts[a.ID] = &cp
	return nil
}

func (r *fakeKeywordAlertRepo) FindByID(ctx context.Context, id uint64) (*model.KeywordAlert, error) {
	a, ok := r.alerts[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeKeywordAlertRepo) Exists(ctx context.Context, userID uint64, keyword string) (bool, error) {
	for _, a := range r.alerts {
		if a.UserID == userID && a.Keyword == keyword {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeKeywordAlertRepo) ListByUser(ctx context.Context, userID uint64) ([]model.KeywordAlert, error) {
	var out []model.KeywordAlert
	for _, a := range r.alerts {
		if a.UserID == userID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *fakeKeywordAlertRepo) CountByUser(ctx context.Context, userID uint64) (int64, error) {
	list, _ := r.ListByUser(ctx, userID)
	return int64(len(list)), nil
}

func (r *fakeKeywordAlertRepo) Delete(ctx context.Context, id uint64) error {
	if _, ok := r.alerts[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.alerts, id)
	return nil
}

func (r *fakeKeywordAlertRepo) FindMatchingTitle(ctx context.Context, title string) ([]model.KeywordAlert, error) {
	var out []model.KeywordAlert
	for _, a := range r.alerts {
		if strings.Contains(title, a.Keyword) {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeFavoriteRepo struct {
	favorites map[uint64]*model.Favorite
	nextID    uint64
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{favorites: map[uint64]*model.Favorite{}, nextID: 1}
}

func (r *fakeFavoriteRepo) Create(ctx context.Context, f *model.Favorite) error {
	f.ID = r.nextID
	r.nextID++
	cp := *f
	r.favorites[f.ID] = &cp
	return nil
}

func (r *fakeFavoriteRepo) Exists(ctx context.Context, userID, productID uint64) (bool, error) {
	for _, f := range r.favorites {
		if f.UserID == userID && f.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeFavoriteRepo) Delete(ctx context.Context, userID, productID uint64) (int64, error) {
	for id, f := range r.favorites {
		if f.UserID == userID && f.ProductID == productID {
			delete(r.favorites, id)
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeFavoriteRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Favorite, error) {
	var out []model.Favorite
	for _, f := range r.favorites {
		if f.UserID == userID {
			out = append(out, *f)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	notifications []model.Notification
	nextID        uint64
	failCreate    bool
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{nextID: 1}
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	if r.failCreate {
		return gorm.ErrInvalidDB
	}
	n.ID = r.nextID
	r.nextID++
	r.notifications = append(r.notifications, *n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID uint64, unreadOnly bool, limit int) ([]model.Notification, error) {
	var out []model.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		out = append(out, n)
	}
	return out, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, userID, id uint64) (int64, error) {
	for i := range r.notifications {
		if r.notifications[i].ID == id && r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID uint64) error {
	for i := range r.notifications {
		if r.notifications[i].UserID == userID {
			r.notifications[i].Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) CountUnread(ctx context.Context, userID uint64) (int64, error) {
	var cnt int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			cnt++
		}
	}
	return cnt, nil
}

func (r *fakeNotificationRepo) forUser(userID uint64) []model.Notification {
	var out []model.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}
