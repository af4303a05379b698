package api

import (
	"context"
	"strconv"
	"time"

	"fitcontest/internal/api/handler"
	"fitcontest/internal/common"
	"fitcontest/internal/common/security"
	"fitcontest/internal/domain/model"
)

// In-memory stand-ins for the stores. Each embeds its interface so only the methods a
// test exercises need bodies.

var epoch = time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)

type fakeUsers struct {
	handler.UserService
	users   []model.User
	patched map[int64]model.UserPatch
	deleted []int64
}

func (f *fakeUsers) List(context.Context) ([]model.User, error) {
	return append([]model.User{}, f.users...), nil
}

func (f *fakeUsers) FindByID(_ context.Context, id int64) (*model.User, error) {
	for _, u := range f.users {
		if u.UserID == id {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsers) FindByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUsers) Create(_ context.Context, in model.NewUser) (*model.User, error) {
	hashed, err := security.HashPassword(*in.Password)
	if err != nil {
		return nil, err
	}
	u := model.User{
		UserID:      int64(len(f.users) + 1),
		Username:    *in.Username,
		Password:    hashed,
		DisplayName: *in.DisplayName,
		DateCreated: epoch,
	}
	f.users = append(f.users, u)
	return &u, nil
}

func (f *fakeUsers) Update(_ context.Context, id int64, p model.UserPatch) (int64, error) {
	if f.patched == nil {
		f.patched = map[int64]model.UserPatch{}
	}
	f.patched[id] = p
	return 1, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) (int64, error) {
	f.deleted = append(f.deleted, id)
	return 1, nil
}

func (f *fakeUsers) Login(ctx context.Context, username, password string) (*model.LoginResult, error) {
	u, err := f.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !security.CheckPasswordHash(password, u.Password) {
		return nil, common.Unauthorized("password does not match")
	}
	return &model.LoginResult{UserID: u.UserID, Password: u.Password, Token: "token-" + strconv.FormatInt(u.UserID, 10)}, nil
}

type fakeContests struct {
	handler.ContestStore
	contests []model.Contest
	err      error
}

func (f *fakeContests) List(context.Context) ([]model.Contest, error) {
	return append([]model.Contest{}, f.contests...), nil
}

func (f *fakeContests) Create(_ context.Context, in model.NewContest) (*model.Contest, error) {
	if f.err != nil {
		return nil, f.err
	}
	c := model.Contest{ContestID: int64(len(f.contests) + 1), ContestName: *in.ContestName, WeighinDay: *in.WeighinDay}
	f.contests = append(f.contests, c)
	return &c, nil
}

func (f *fakeContests) FindByID(_ context.Context, id int64) (*model.Contest, error) {
	for _, c := range f.contests {
		if c.ContestID == id {
			return &c, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeContests) FindByName(_ context.Context, name string) ([]model.Contest, error) {
	out := []model.Contest{}
	for _, c := range f.contests {
		if c.ContestName == name {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeStats struct {
	handler.CurrentStatsStore
	stats       []model.CurrentStats
	updates     []model.Assignments
	userUpdates []model.Assignments
	deleted     []int64
}

func (f *fakeStats) FindByUser(_ context.Context, userID int64) ([]model.CurrentStats, error) {
	out := []model.CurrentStats{}
	for _, s := range f.stats {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStats) FindByContest(_ context.Context, contestID int64) ([]model.CurrentStats, error) {
	out := []model.CurrentStats{}
	for _, s := range f.stats {
		if s.ContestID == contestID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStats) WeightPageStats(ctx context.Context, userID, contestID int64) ([]model.WeightPageStats, error) {
	rows, _ := f.FindByContestUser(ctx, userID, contestID)
	out := []model.WeightPageStats{}
	for _, s := range rows {
		out = append(out, model.WeightPageStats{
			UserID:        s.UserID,
			ContestID:     s.ContestID,
			CurrentWeight: s.CurrentWeight.InexactFloat64(),
			GoalWeight:    s.GoalWeight.InexactFloat64(),
			DisplayName:   s.DisplayName,
		})
	}
	return out, nil
}

func (f *fakeStats) UpdateByUser(_ context.Context, _ int64, set model.Assignments) (int64, error) {
	f.userUpdates = append(f.userUpdates, set)
	return 1, nil
}

func (f *fakeStats) DeleteByUser(_ context.Context, userID int64) (int64, error) {
	f.deleted = append(f.deleted, userID)
	return 1, nil
}

func (f *fakeStats) DeleteByContestUser(_ context.Context, userID, _ int64) (int64, error) {
	f.deleted = append(f.deleted, userID)
	return 1, nil
}

func (f *fakeStats) FindByContestUser(_ context.Context, userID, contestID int64) ([]model.CurrentStats, error) {
	out := []model.CurrentStats{}
	for _, s := range f.stats {
		if s.UserID == userID && s.ContestID == contestID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeStats) DisplayName(ctx context.Context, userID, contestID int64) (string, error) {
	rows, _ := f.FindByContestUser(ctx, userID, contestID)
	if len(rows) == 0 {
		return "", common.ErrNotFound
	}
	return rows[0].DisplayName, nil
}

func (f *fakeStats) UpdateByContestUser(_ context.Context, _, _ int64, set model.Assignments) (int64, error) {
	f.updates = append(f.updates, set)
	return 1, nil
}

type fakeWeighins struct {
	handler.WeighinService
	weighins []model.Weighin
	limits   []int
}

func (f *fakeWeighins) FindByID(_ context.Context, id int64) (*model.Weighin, error) {
	for _, w := range f.weighins {
		if w.ID == id {
			return &w, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeWeighins) Latest(_ context.Context, _, _ int64, limit int) ([]model.Weighin, error) {
	f.limits = append(f.limits, limit)
	out := []model.Weighin{}
	for i := len(f.weighins) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.weighins[i])
	}
	return out, nil
}

type fakePoints struct {
	handler.PointsService
	points []model.Points
}

func (f *fakePoints) Create(_ context.Context, in model.NewPoints) (*model.Points, error) {
	p := model.Points{
		ID:          int64(len(f.points) + 1),
		UserID:      *in.UserID,
		ContestID:   *in.ContestID,
		Points:      *in.Points,
		Category:    *in.Category,
		WinID:       in.WinID,
		DateCreated: epoch.Add(time.Duration(len(f.points)) * time.Minute),
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	f.points = append(f.points, p)
	return &p, nil
}

func (f *fakePoints) FindByUser(_ context.Context, userID int64) ([]model.Points, error) {
	out := []model.Points{}
	for _, p := range f.points {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePoints) TotalForUser(_ context.Context, userID, contestID int64) ([]model.PointsSum, error) {
	var sum int64
	found := false
	for _, p := range f.points {
		if p.UserID == userID && p.ContestID == contestID {
			sum += p.Points
			found = true
		}
	}
	if !found {
		return []model.PointsSum{{}}, nil
	}
	s := strconv.FormatInt(sum, 10)
	return []model.PointsSum{{Sum: &s}}, nil
}

type fakeWins struct {
	handler.WinStore
	wins    []model.Win
	deleted []int64
}

func (f *fakeWins) List(context.Context) ([]model.Win, error) {
	return append([]model.Win{}, f.wins...), nil
}

func (f *fakeWins) FindByID(_ context.Context, winID int64) ([]model.Win, error) {
	out := []model.Win{}
	for _, w := range f.wins {
		if w.WinID == winID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWins) Delete(_ context.Context, winID int64) (int64, error) {
	f.deleted = append(f.deleted, winID)
	return 1, nil
}

func (f *fakeUsers) ListSummaries(context.Context) ([]model.UserSummary, error) {
	out := []model.UserSummary{}
	for _, u := range f.users {
		out = append(out, model.UserSummary{UserID: u.UserID, Username: u.Username, DisplayName: u.DisplayName})
	}
	return out, nil
}

func (f *fakeStats) List(context.Context) ([]model.CurrentStats, error) {
	return append([]model.CurrentStats{}, f.stats...), nil
}

func (f *fakeStats) ListByContest(ctx context.Context) ([]model.CurrentStats, error) {
	return f.List(ctx)
}

func (f *fakeStats) Create(_ context.Context, in model.NewCurrentStats) (*model.CurrentStats, error) {
	s := model.CurrentStats{
		UserID:        *in.UserID,
		ContestID:     *in.ContestID,
		CurrentWeight: *in.CurrentWeight,
		GoalWeight:    *in.GoalWeight,
		DisplayName:   *in.DisplayName,
	}
	f.stats = append(f.stats, s)
	return &s, nil
}

func (f *fakeWeighins) List(context.Context) ([]model.Weighin, error) {
	return append([]model.Weighin{}, f.weighins...), nil
}

func (f *fakeWeighins) Create(_ context.Context, in model.NewWeighin) (*model.Weighin, error) {
	w := model.Weighin{
		ID:          int64(len(f.weighins) + 1),
		UserID:      *in.UserID,
		ContestID:   *in.ContestID,
		Weight:      *in.Weight,
		DateCreated: epoch,
	}
	f.weighins = append(f.weighins, w)
	return &w, nil
}

func (f *fakePoints) List(context.Context) ([]model.Points, error) {
	return append([]model.Points{}, f.points...), nil
}

func (f *fakeWins) Create(_ context.Context, in model.NewWin) (*model.Win, error) {
	w := model.Win{WinID: int64(len(f.wins) + 1), Win: *in.Win, ContestID: *in.ContestID}
	f.wins = append(f.wins, w)
	return &w, nil
}

type fakeContestUsers struct {
	handler.ContestUserStore
}

func (f *fakeContestUsers) List(context.Context) ([]model.ContestUser, error) {
	return []model.ContestUser{}, nil
}

func (f *fakeContestUsers) Create(_ context.Context, in model.NewContestUser) (*model.ContestUser, error) {
	return &model.ContestUser{ID: 1, UserID: *in.UserID, ContestID: *in.ContestID, DateCreated: epoch}, nil
}

type fakeMeasurements struct {
	handler.MeasurementStore
}

func (f *fakeMeasurements) List(context.Context) ([]model.Measurement, error) {
	return []model.Measurement{}, nil
}

func (f *fakeMeasurements) Create(_ context.Context, in model.NewMeasurement) (*model.Measurement, error) {
	return &model.Measurement{ID: 1, UserID: *in.UserID, ContestID: *in.ContestID, Measurement: *in.Measurement, DateCreated: epoch}, nil
}

type fakeWorkouts struct {
	handler.WorkoutStore
}

func (f *fakeWorkouts) List(context.Context) ([]model.Workout, error) {
	return []model.Workout{}, nil
}

func (f *fakeWorkouts) Create(_ context.Context, in model.NewWorkout) (*model.Workout, error) {
	return &model.Workout{ID: 1, UserID: *in.UserID, ContestID: *in.ContestID, Category: *in.Category, DateCreated: epoch}, nil
}
